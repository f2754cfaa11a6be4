package domain

import "sort"

// Vars holds named numeric constants that parameter expressions may reference.
type Vars map[string]float64

// Environment is a named set of vars layered over a scenario's own vars
// (e.g. a "precise" env that changes a scale factor).
type Environment struct {
	Name string
	Vars Vars
}

// EnvironmentRef identifies an environment file inside a workspace.
type EnvironmentRef struct {
	Name string
	Path string
}

// Get returns a value for the given key and a boolean indicating if it exists.
func Get(vars Vars, key string) (float64, bool) {
	if vars == nil {
		return 0, false
	}
	val, ok := vars[key]
	return val, ok
}

// Set sets a key/value in the map, initializing it if needed.
func Set(vars Vars, key string, value float64) Vars {
	if vars == nil {
		vars = Vars{}
	}
	vars[key] = value
	return vars
}

// Merge merges base and override vars (override wins) and returns a new map.
func Merge(base Vars, override Vars) Vars {
	out := Vars{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Names returns the var names in sorted order.
func (v Vars) Names() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
