// Package promfile writes sweep summaries in the Prometheus text exposition
// format, for node_exporter's textfile collector or CI artifact scraping.
package promfile

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aalvaropc/recur/internal/domain"
)

// WriteSweep writes res to path. The file is replaced atomically.
func WriteSweep(path string, res domain.SweepResult) error {
	reg := prometheus.NewRegistry()

	cells := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "recur",
		Subsystem: "sweep",
		Name:      "cells",
		Help:      "Grid cells by outcome.",
	}, []string{"outcome"})
	tolerance := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "recur",
		Subsystem: "sweep",
		Name:      "tolerance",
		Help:      "Agreement tolerance used by the sweep.",
	})
	worst := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "recur",
		Subsystem: "sweep",
		Name:      "worst_rel_diff",
		Help:      "Largest relative difference between the evaluators.",
	})

	if err := registerAll(reg, cells, tolerance, worst); err != nil {
		return err
	}

	cells.WithLabelValues("total").Set(float64(res.Total))
	cells.WithLabelValues("agreed").Set(float64(res.Agreed))
	cells.WithLabelValues("disagreed").Set(float64(res.Disagreed))
	cells.WithLabelValues("singular").Set(float64(res.Singular))
	tolerance.Set(res.Tolerance)
	if res.Worst != nil {
		worst.Set(res.Worst.RelDiff)
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return &domain.OpError{Op: "promfile.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

func registerAll(reg *prometheus.Registry, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}
