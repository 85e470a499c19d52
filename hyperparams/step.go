package hyperparams

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

type step struct {
	Epoch int     `json:"epoch"`
	Val   float32 `json:"value"`
}

type stepper []step

// Step returns a schedule that starts at 'base' and changes to the values given by Add once their
// epochs have finished. Steps must be added in increasing order of epoch.
func Step(base float32) *stepper {
	s := make([]step, 1)

	s[0] = step{0, base}

	st := stepper(s)
	return &st
}

// Add adds a step to the schedule: the rate used after 'epoch' epochs have finished.
func (s *stepper) Add(epoch int, value float32) *stepper {
	*s = append(*s, step{epoch, value})
	return s
}

func (s *stepper) TypeString() string {
	return "step"
}

func (s *stepper) Initial() float32 {
	return s.value(0)
}

// Rate is given the index of the epoch that just finished, so the next epoch is epoch+1.
func (s *stepper) Rate(epoch int, avgLoss float32) float32 {
	return s.value(epoch + 1)
}

func (s *stepper) value(epoch int) float32 {
	sl := []step(*s)
	for i := 1; i < len(sl); i++ {
		if sl[i].Epoch > epoch {
			return sl[i-1].Val
		}
	}

	return sl[len(sl)-1].Val
}

// ParseSteps builds a Step schedule from 'base' and a comma-separated list of "epoch:rate" steps,
// e.g. "10:0.005,20:0.001". Epochs must be positive and increasing, and rates positive.
func ParseSteps(base float32, list string) (*stepper, error) {
	st := Step(base)

	last := 0
	for _, field := range strings.Split(list, ",") {
		parts := strings.Split(strings.TrimSpace(field), ":")
		if len(parts) != 2 {
			return nil, errors.Errorf("Step %q isn't of the form epoch:rate", field)
		}

		epoch, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't parse epoch of step %q", field)
		} else if epoch <= last {
			return nil, errors.Errorf("Step epochs must be positive and increasing (%d after %d)", epoch, last)
		}

		v, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't parse rate of step %q", field)
		}

		rate := float32(v)
		if rate <= 0 || math32.IsInf(rate, 0) || math32.IsNaN(rate) {
			return nil, errors.Errorf("Step rate must be positive and finite (got %v)", rate)
		}

		st.Add(epoch, rate)
		last = epoch
	}

	return st, nil
}
