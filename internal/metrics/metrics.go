// Package metrics provides per-frame observers that summarize a run.
package metrics

import "github.com/san-kum/raindrops/internal/dynamo"

// Defaults returns a fresh instance of every standard metric.
func Defaults(p dynamo.Params) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeakCount(),
		NewMeanSpeed(),
		NewKineticEnergy(),
		NewTiltEffort(),
		NewOverlap(p.RestDistance),
		NewExitDuration(),
	}
}
