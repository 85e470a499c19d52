package hyperparams

type adaptive struct {
	Settings
}

// Adaptive returns a schedule that keeps the rate at BaseRate until the average loss falls below
// LossEdge, then interpolates towards MinRate as the loss approaches zero.
func Adaptive(s Settings) *adaptive {
	return &adaptive{s}
}

func (a *adaptive) TypeString() string {
	return "adaptive"
}

func (a *adaptive) Initial() float32 {
	return a.BaseRate
}

func (a *adaptive) Rate(epoch int, avgLoss float32) float32 {
	return NextRate(avgLoss, a.Settings)
}

// NextRate is the rate the adaptive schedule gives for an average loss.
//
// A NaN loss compares false against LossEdge and so gets the rate for zero loss; training stops
// on a NaN loss anyways.
func NextRate(avgLoss float32, s Settings) float32 {
	if !s.Adaptive || avgLoss >= s.LossEdge {
		return s.BaseRate
	}

	alpha := clamp(avgLoss/s.LossEdge, 0, 1)
	if s.Ease {
		alpha = lerp(alpha, EaseInSine(alpha), s.EaseAlpha)
	}

	rate := lerp(s.MinRate, s.BaseRate, alpha)
	if rate < s.MinRate {
		return s.MinRate
	}

	return rate
}
