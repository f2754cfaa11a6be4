package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/recur/internal/domain"
	"github.com/aalvaropc/recur/internal/recurrence"
)

const defaultMaxFailures = 20

// Sweep compares both evaluators over every cell of a parameter grid.
type Sweep struct {
	tolerance   float64
	concurrency int
	maxFailures int
	log         *slog.Logger
}

type SweepOption func(*Sweep)

func WithSweepTolerance(tol float64) SweepOption {
	return func(uc *Sweep) {
		if tol > 0 {
			uc.tolerance = tol
		}
	}
}

// WithConcurrency bounds the number of cells evaluated at once.
func WithConcurrency(n int) SweepOption {
	return func(uc *Sweep) {
		if n > 0 {
			uc.concurrency = n
		}
	}
}

// WithMaxFailures bounds how many disagreeing cells are kept in the result.
func WithMaxFailures(n int) SweepOption {
	return func(uc *Sweep) {
		if n >= 0 {
			uc.maxFailures = n
		}
	}
}

func WithSweepLogger(l *slog.Logger) SweepOption {
	return func(uc *Sweep) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewSweep(opts ...SweepOption) *Sweep {
	uc := &Sweep{
		tolerance:   domain.DefaultTolerance,
		concurrency: domain.DefaultConfig().Sweep.Concurrency,
		maxFailures: defaultMaxFailures,
		log:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type sweepCell struct {
	idx int
	cmp domain.Comparison
}

// Execute visits the cartesian product of grid. Cells with alpha == 1 are
// counted as Singular. Failures are reported in grid order.
func (uc *Sweep) Execute(ctx context.Context, grid domain.SweepGrid) (domain.SweepResult, error) {
	res := domain.SweepResult{Tolerance: uc.tolerance}

	total := grid.Size()
	if total == 0 {
		return res, &domain.OpError{
			Op:   "sweep.grid",
			Kind: domain.KindInvalidParams,
			Err:  fmt.Errorf("every parameter needs at least one value: %w", domain.ErrInvalidParams),
		}
	}
	for i := 0; i < total; i++ {
		if err := grid.Cell(i).Validate(); err != nil {
			return res, err
		}
	}

	var (
		mu       sync.Mutex
		worst    *sweepCell
		failures []sweepCell
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			p := grid.Cell(i)
			cmp := uc.evaluate(p)

			mu.Lock()
			defer mu.Unlock()

			res.Total++
			switch {
			case p.Alpha == 1:
				res.Singular++
				return nil
			case cmp.Agree:
				res.Agreed++
			default:
				res.Disagreed++
				if uc.maxFailures > 0 {
					failures = append(failures, sweepCell{idx: i, cmp: cmp})
					if len(failures) > 2*uc.maxFailures {
						failures = trimFailures(failures, uc.maxFailures)
					}
				}
			}
			if worst == nil || worse(cmp.RelDiff, i, worst.cmp.RelDiff, worst.idx) {
				worst = &sweepCell{idx: i, cmp: cmp}
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if worst != nil {
		res.Worst = &worst.cmp
	}
	for _, f := range trimFailures(failures, uc.maxFailures) {
		res.Failures = append(res.Failures, f.cmp)
	}

	uc.log.Debug("sweep finished",
		"total", res.Total,
		"agreed", res.Agreed,
		"disagreed", res.Disagreed,
		"singular", res.Singular,
		"canceled", err != nil,
	)
	return res, err
}

// evaluate compares a single cell and cross-checks C_n against its direct sum.
func (uc *Sweep) evaluate(p domain.Params) domain.Comparison {
	cmp := compare(fmt.Sprintf("sweep[%s]", p), p, uc.tolerance, recurrence.Discard)
	if cmp.Error != "" || !cmp.Agree {
		return cmp
	}

	cn := recurrence.Coefficient(p.Alpha, p.N)
	direct := recurrence.WeightedSum(p.Alpha, p.N)
	if !domain.WithinTolerance(cn, direct, uc.tolerance) {
		cmp.Agree = false
		cmp.Error = fmt.Sprintf("coefficient mismatch: C_n=%g, direct sum=%g", cn, direct)
	}
	return cmp
}

// worse ranks NaN above every number and breaks ties by grid order.
func worse(a float64, ai int, b float64, bi int) bool {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return ai < bi
	case math.IsNaN(a):
		return true
	case math.IsNaN(b):
		return false
	case a == b:
		return ai < bi
	default:
		return a > b
	}
}

func trimFailures(in []sweepCell, limit int) []sweepCell {
	sort.Slice(in, func(i, j int) bool { return in[i].idx < in[j].idx })
	if len(in) > limit {
		in = in[:limit]
	}
	return in
}
