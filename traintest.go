package ann

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prkl/ann/costfuncs"
	"github.com/prkl/ann/hyperparams"
)

// Settings are the hyperparameters of training that aren't part of the rate schedule. The
// embedded hyperparams.Settings configures the default (adaptive) schedule.
type Settings struct {
	hyperparams.Settings

	// GradLimit bounds the derivative of every activation function to [-GradLimit, GradLimit].
	// A value ≤ 0 disables the limit.
	GradLimit float32 `json:"grad_limit"`

	// EarlyExit enables stopping once the average loss of an epoch rises above the lowest so far
	// by more than EarlyExitThreshold (as a fraction). It is only used when there is no held-out
	// set.
	EarlyExit          bool    `json:"early_exit"`
	EarlyExitThreshold float32 `json:"early_exit_threshold"`

	// Patience is the number of epochs in a row without improvement on the held-out set after
	// which training stops.
	Patience int `json:"patience"`
}

// DefaultSettings returns the Settings used when TrainArgs.Settings is nil
func DefaultSettings() Settings {
	return Settings{
		Settings:           hyperparams.DefaultSettings(),
		GradLimit:          0.75,
		EarlyExit:          true,
		EarlyExitThreshold: 0.2,
		Patience:           4,
	}
}

// Validate checks that the Settings are usable
func (s Settings) Validate() error {
	if err := s.Settings.Validate(); err != nil {
		return err
	} else if math32.IsNaN(s.GradLimit) {
		return errors.Errorf("Gradient limit is NaN")
	} else if s.EarlyExitThreshold < 0 || math32.IsNaN(s.EarlyExitThreshold) {
		return errors.Errorf("Early exit threshold must be non-negative (got %v)", s.EarlyExitThreshold)
	} else if s.Patience < 1 {
		return errors.Errorf("Patience must be at least 1 (got %d)", s.Patience)
	}

	return nil
}

type TrainArgs struct {
	// Data is the training set. It must not be empty, and its widths must match the input and
	// output layers.
	Data *Set

	// HeldOut is an optional set used to pick the best model by success rate (see Evaluate)
	// instead of by training loss. It can be nil.
	HeldOut *Set

	// Epochs is the maximum number of passes over Data
	Epochs int

	// Settings can be left nil to use DefaultSettings()
	Settings *Settings

	// Schedule gives the learning rate for each epoch. If nil, the adaptive schedule is built
	// from Settings.
	Schedule RateSchedule

	// Update is called with the result of every epoch. It can be left nil.
	Update func(Result)
}

// A wrapper for sending back the progress of training, once per epoch
type Result struct {
	// RunID identifies the call to Train that sent the Result
	RunID uuid.UUID

	// The epoch the result is for, starting at 0
	Epoch int

	// The learning rate used during the epoch
	Rate float32

	// Average loss over the training set
	Loss float32

	// The fraction of the held-out set that was correct after the epoch. Only set if
	// HasSuccessRate is true.
	SuccessRate    float32
	HasSuccessRate bool

	// Snapshot is true if this epoch was the best so far, and the model was saved
	Snapshot bool

	// Time since training started
	Elapsed time.Duration
}

// StopReason gives why training finished
type StopReason int

const (
	// Every epoch was run
	Completed StopReason = iota

	// The loss rose too far above the best (or became NaN or infinite)
	Diverged

	// The success rate on the held-out set stopped improving
	Stagnated

	// A NaN showed up in the output of the model
	NumericalInstability
)

func (r StopReason) String() string {
	switch r {
	case Completed:
		return "completed"
	case Diverged:
		return "diverged"
	case Stagnated:
		return "stagnated"
	case NumericalInstability:
		return "numerical instability"
	}

	return "unknown"
}

// TrainResult summarizes a call to Train
type TrainResult struct {
	RunID uuid.UUID

	// The number of epochs that were run, including the one training stopped at
	Epochs int

	// The epoch the model was restored to, or -1 if no epoch was better than the starting point
	BestEpoch int

	// The average loss and success rate of BestEpoch. BestSuccessRate is only meaningful when
	// training with a held-out set.
	BestLoss        float32
	BestSuccessRate float32

	Stop StopReason

	// Instability is the *NumericalError that stopped training, if Stop is NumericalInstability
	Instability error
}

// Train runs backpropagation over args.Data for up to args.Epochs epochs, then restores the Model
// to the best state seen: the epoch with the lowest average loss, or with the highest success rate
// on args.HeldOut if it was given. If no epoch was good enough to be saved, the Model is restored
// to how it was before training.
//
// Errors are only returned for invalid arguments, before anything is changed. Training that
// diverges or runs into NaNs still returns a usable model, with the reason in TrainResult.Stop.
func (m *Model) Train(args TrainArgs) (TrainResult, error) {
	var settings Settings
	var schedule RateSchedule
	// handle error cases and set defaults
	{
		if len(m.layers) < 2 {
			return TrainResult{}, errors.Wrapf(ErrTooFewLayers, "Can't train model with %d layers", len(m.layers))
		} else if args.Data == nil {
			return TrainResult{}, NilArgError{"Training data"}
		} else if args.Epochs < 0 {
			return TrainResult{}, errors.Errorf("Number of epochs can't be negative (got %d)", args.Epochs)
		}

		if err := m.checkSet(args.Data); err != nil {
			return TrainResult{}, errors.Wrapf(err, "Training data doesn't fit model")
		} else if args.Data.Len() == 0 {
			return TrainResult{}, errors.Wrapf(ErrEmptySet, "Can't train on empty data")
		}

		if args.HeldOut != nil {
			if err := m.checkSet(args.HeldOut); err != nil {
				return TrainResult{}, errors.Wrapf(err, "Held-out data doesn't fit model")
			} else if args.HeldOut.Len() == 0 {
				return TrainResult{}, errors.Wrapf(ErrEmptySet, "Can't evaluate on empty held-out data")
			}
		}

		settings = DefaultSettings()
		if args.Settings != nil {
			settings = *args.Settings
		}
		if err := settings.Validate(); err != nil {
			return TrainResult{}, errors.Wrapf(err, "Invalid settings")
		}

		schedule = args.Schedule
		if schedule == nil {
			schedule = hyperparams.Adaptive(settings.Settings)
		}

		if args.Update == nil {
			args.Update = func(r Result) {}
		}
	}

	cf, err := m.costFunction()
	if err != nil {
		return TrainResult{}, err
	}

	// one gradient buffer per layer; the input layer has none
	grads := make([][]float32, len(m.layers))
	for i := 1; i < len(m.layers); i++ {
		grads[i] = make([]float32, m.layers[i].Size())
	}

	res := TrainResult{
		RunID:     uuid.New(),
		BestEpoch: -1,
		BestLoss:  math32.Inf(1),
		Stop:      Completed,
	}

	start := time.Now()
	best := m.Snapshot()
	minLoss := math32.Inf(1)
	bestSuccess := float32(-1)
	stale := 0
	rate := schedule.Initial()

	for epoch := 0; epoch < args.Epochs; epoch++ {
		res.Epochs = epoch + 1

		var total float32
		for _, p := range args.Data.pairs {
			loss, err := m.trainPair(p, cf, grads, rate, settings.GradLimit)
			if err != nil {
				res.Stop = NumericalInstability
				res.Instability = err
				break
			}

			total += loss
		}

		if res.Stop == NumericalInstability {
			break
		}

		avg := total / float32(args.Data.Len())
		r := Result{
			RunID:   res.RunID,
			Epoch:   epoch,
			Rate:    rate,
			Loss:    avg,
			Elapsed: time.Since(start),
		}

		if math32.IsNaN(avg) || math32.IsInf(avg, 0) {
			args.Update(r)
			res.Stop = Diverged
			break
		}

		var improved bool
		if args.HeldOut != nil {
			sr, err := m.Evaluate(args.HeldOut)
			if err != nil {
				args.Update(r)
				res.Stop = NumericalInstability
				res.Instability = err
				break
			}

			r.SuccessRate, r.HasSuccessRate = sr, true
			if sr > bestSuccess {
				bestSuccess = sr
				improved = true
				stale = 0
			} else {
				stale++
			}
		} else {
			improved = avg < minLoss
		}

		if avg < minLoss {
			minLoss = avg
		}

		if improved {
			best.Update(m)
			r.Snapshot = true
			res.BestEpoch = epoch
			res.BestLoss = avg
			res.BestSuccessRate = r.SuccessRate
		}

		args.Update(r)

		if args.HeldOut != nil {
			if stale >= settings.Patience {
				res.Stop = Stagnated
				break
			}
		} else if settings.EarlyExit && avg > minLoss*(1+settings.EarlyExitThreshold) {
			res.Stop = Diverged
			break
		}

		rate = schedule.Rate(epoch, avg)
	}

	m.ApplySnapshot(best)
	return res, nil
}

// trainPair does one step of backpropagation, returning the loss of the pair before the step
func (m *Model) trainPair(p Pair, cf costfuncs.CostFunction, grads [][]float32, rate, gradLimit float32) (float32, error) {
	if err := m.SetInputs(p.Input); err != nil {
		return 0, err
	}

	if err := m.ForwardPropagate(); err != nil {
		return 0, err
	}

	last := len(m.layers) - 1
	loss := m.layers[last].OutputGradients(cf, p.Output, grads[last], gradLimit)

	// skips the input layer, which has no weights
	for i := last - 1; i > 0; i-- {
		m.layers[i].Backpropagate(grads[i+1], m.layers[i+1], grads[i], gradLimit)
	}

	// updates go from the input forwards; each one only reads the activations of the layer
	// before it, which updating weights doesn't change
	for i := 1; i <= last; i++ {
		m.layers[i].UpdateWeights(grads[i], m.layers[i-1], rate)
	}

	return loss, nil
}

// Evaluate returns the fraction of pairs in the set for which the largest output of the Model is at
// the same index as the largest expected output. An empty set gives 0.
func (m *Model) Evaluate(set *Set) (float32, error) {
	if set == nil {
		return 0, NilArgError{"Set"}
	} else if len(m.layers) < 2 {
		return 0, errors.Wrapf(ErrTooFewLayers, "Can't evaluate model with %d layers", len(m.layers))
	} else if err := m.checkSet(set); err != nil {
		return 0, errors.Wrapf(err, "Set doesn't fit model")
	} else if set.Len() == 0 {
		return 0, nil
	}

	out := m.layers[len(m.layers)-1]

	var hits int
	for _, p := range set.pairs {
		if err := m.SetInputs(p.Input); err != nil {
			return 0, err
		} else if err := m.ForwardPropagate(); err != nil {
			return 0, err
		}

		if CorrectHighest(out.Activations(), p.Output) {
			hits++
		}
	}

	return float32(hits) / float32(set.Len()), nil
}

// checkSet returns a *DimensionError if the set's widths don't match the Model
func (m *Model) checkSet(set *Set) error {
	if set.NumInputs() != m.InputSize() {
		return &DimensionError{"Input width", m.InputSize(), set.NumInputs()}
	} else if set.NumOutputs() != m.OutputSize() {
		return &DimensionError{"Output width", m.OutputSize(), set.NumOutputs()}
	}

	return nil
}
