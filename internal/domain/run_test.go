package domain

import "testing"

func TestComparisonFailed(t *testing.T) {
	cases := []struct {
		name string
		c    Comparison
		want bool
	}{
		{"agree no checks", Comparison{Agree: true}, false},
		{"disagree", Comparison{Agree: false}, true},
		{"agree failing check", Comparison{Agree: true, Checks: []CheckResult{{Passed: true}, {Passed: false}}}, true},
		{"agree passing checks", Comparison{Agree: true, Checks: []CheckResult{{Passed: true}}}, false},
	}
	for _, c := range cases {
		if got := c.c.Failed(); got != c.want {
			t.Errorf("%s: Failed() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSweepGridSize(t *testing.T) {
	g := SweepGrid{
		N:     []int{0, 1, 5},
		Y0:    []float64{0},
		X0:    []float64{0, 1},
		Beta:  []float64{0.1},
		Alpha: []float64{0.5, 0.9},
	}
	if got := g.Size(); got != 12 {
		t.Fatalf("expected 12 cells, got %d", got)
	}
	if (SweepGrid{}).Size() != 0 {
		t.Fatalf("expected empty grid size 0")
	}
}

func TestSweepGridCell(t *testing.T) {
	g := SweepGrid{
		N:     []int{0, 1, 5},
		Y0:    []float64{0},
		X0:    []float64{0, 1},
		Beta:  []float64{0.1},
		Alpha: []float64{0.5, 0.9},
	}

	cases := []struct {
		i    int
		want Params
	}{
		{0, Params{N: 0, Y0: 0, X0: 0, Beta: 0.1, Alpha: 0.5}},
		{1, Params{N: 0, Y0: 0, X0: 0, Beta: 0.1, Alpha: 0.9}},
		{2, Params{N: 0, Y0: 0, X0: 1, Beta: 0.1, Alpha: 0.5}},
		{4, Params{N: 1, Y0: 0, X0: 0, Beta: 0.1, Alpha: 0.5}},
		{11, Params{N: 5, Y0: 0, X0: 1, Beta: 0.1, Alpha: 0.9}},
	}
	for _, c := range cases {
		if got := g.Cell(c.i); got != c.want {
			t.Errorf("Cell(%d) = %+v, want %+v", c.i, got, c.want)
		}
	}

	seen := map[Params]bool{}
	for i := 0; i < g.Size(); i++ {
		seen[g.Cell(i)] = true
	}
	if len(seen) != g.Size() {
		t.Fatalf("expected %d distinct cells, got %d", g.Size(), len(seen))
	}
}
