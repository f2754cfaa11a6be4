package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/recur/internal/domain"
)

var (
	reLine         = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)
	reUnknownParam = regexp.MustCompile(`unknown parameter\s+"?([A-Za-z_][A-Za-z0-9_]*)`)
	reField        = regexp.MustCompile(`\bfield\s+([a-z0-9_.\[\]]+)`)
)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "yamlscenario") {
				return "Scenario not found"
			}
			if strings.Contains(oe.Op, "yamlenv") {
				return "Environment not found"
			}
			if strings.Contains(oe.Op, "workspacefinder.findroot") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindMissingVar:
			v := extractMissingVarName(err.Error())
			if v == "" {
				return "Missing variable"
			}
			return "Missing variable " + v

		case domain.KindInvalidParams:
			if f := extractField(err.Error()); f != "" {
				return "Invalid parameter " + f
			}
			return "Invalid parameters"

		case domain.KindArithmetic:
			if errors.Is(err, domain.ErrSingularAlpha) {
				return "Closed form undefined for alpha = 1"
			}
			return "Arithmetic error"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if f := extractField(err.Error()); f != "" {
				return "Invalid " + f + " in " + base
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

func extractField(s string) string {
	m := reField.FindStringSubmatch(s)
	if len(m) == 2 {
		return strings.TrimRight(m[1], ":.")
	}
	return ""
}

func extractMissingVarName(s string) string {
	m := reUnknownParam.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
