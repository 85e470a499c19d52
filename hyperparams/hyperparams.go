// Package hyperparams provides the learning rate schedules used by training.
//
// A schedule is asked for a new rate after every epoch, given the epoch that just finished and
// its average loss.
package hyperparams

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Settings configures the Adaptive schedule.
type Settings struct {
	// Adaptive enables shrinking the rate as the loss approaches LossEdge. If false, the rate is
	// always BaseRate.
	Adaptive bool `json:"adaptive"`

	// BaseRate is the rate used while the loss is at or above LossEdge
	BaseRate float32 `json:"base_rate"`

	// LossEdge is the average loss below which the rate starts to shrink
	LossEdge float32 `json:"loss_edge"`

	// MinRate is the rate at zero loss, and the floor of every rate returned
	MinRate float32 `json:"min_rate"`

	// Ease bends the interpolation between MinRate and BaseRate through a sine ease-in curve,
	// so that the rate falls off faster just below LossEdge
	Ease bool `json:"ease"`

	// EaseAlpha blends between the linear (0) and eased (1) curve
	EaseAlpha float32 `json:"ease_alpha"`
}

// DefaultSettings returns the settings that training uses when none are given.
func DefaultSettings() Settings {
	return Settings{
		Adaptive:  true,
		BaseRate:  0.01,
		LossEdge:  0.25,
		MinRate:   5e-8,
		Ease:      false,
		EaseAlpha: 1.0,
	}
}

// Validate checks that the settings can produce a usable rate.
func (s Settings) Validate() error {
	bad := func(v float32) bool { return math32.IsNaN(v) || math32.IsInf(v, 0) }

	switch {
	case bad(s.BaseRate) || s.BaseRate <= 0:
		return errors.Errorf("Base rate must be positive and finite (got %v)", s.BaseRate)
	case !s.Adaptive:
		return nil
	case bad(s.LossEdge) || s.LossEdge <= 0:
		return errors.Errorf("Loss edge must be positive and finite (got %v)", s.LossEdge)
	case bad(s.MinRate) || s.MinRate < 0:
		return errors.Errorf("Minimum rate must be non-negative and finite (got %v)", s.MinRate)
	case s.MinRate > s.BaseRate:
		return errors.Errorf("Minimum rate is greater than base rate (%v > %v)", s.MinRate, s.BaseRate)
	case bad(s.EaseAlpha) || s.EaseAlpha < 0 || s.EaseAlpha > 1:
		return errors.Errorf("Ease alpha must be in [0, 1] (got %v)", s.EaseAlpha)
	}

	return nil
}

// EaseInSine maps [0, 1] onto [0, 1], starting slowly: 1 - cos(x·π/2)
func EaseInSine(x float32) float32 {
	return 1 - math32.Cos(x*math32.Pi/2)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}
