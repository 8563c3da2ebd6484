package dataprocessing

import (
	"log/slog"
	"time"

	"entsocli/internal/infrastructure"
)

// resolutionTable maps the platform's duration codes to a step in
// minutes. PT1H is the same step as PT60M; both occur in the wild.
var resolutionTable = map[string]int{
	"PT15M": 15,
	"PT30M": 30,
	"PT60M": 60,
	"PT1H":  60,
}

// Reconstructor derives absolute point instants from period context. The
// only state is the configured fallback for unrecognized resolution codes,
// so a single Reconstructor serves any number of concurrent documents.
type Reconstructor struct {
	defaultMinutes int
	logger         *slog.Logger
}

// NewReconstructor returns a Reconstructor that falls back to
// defaultMinutes for resolution codes outside the known table. The
// fallback is an approximation, so every use of it is logged and counted.
func NewReconstructor(defaultMinutes int, logger *slog.Logger) *Reconstructor {
	if defaultMinutes <= 0 {
		defaultMinutes = 60
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconstructor{defaultMinutes: defaultMinutes, logger: logger}
}

// Minutes resolves a resolution code to its step in minutes. The second
// return reports whether the code was recognized; an unrecognized code
// yields the configured default.
func (r *Reconstructor) Minutes(code string) (int, bool) {
	if minutes, ok := resolutionTable[code]; ok {
		return minutes, true
	}
	return r.defaultMinutes, false
}

// PointTime computes start + (position-1) × step for a 1-based position.
// The result is always UTC; local rendering is the normalizer's job. The
// start instant is carried through untouched — no rounding of seconds or
// milliseconds happens here. A nil start yields nil.
func (r *Reconstructor) PointTime(start *time.Time, position int, resolution string) *time.Time {
	if start == nil {
		return nil
	}

	minutes, known := r.Minutes(resolution)
	if !known {
		infrastructure.ResolutionFallbacks.Inc()
		r.logger.Warn("unrecognized resolution code, using default step",
			slog.String("resolution", resolution),
			slog.Int("default_minutes", r.defaultMinutes))
	}

	ts := start.UTC().Add(time.Duration(position-1) * time.Duration(minutes) * time.Minute)
	return &ts
}
