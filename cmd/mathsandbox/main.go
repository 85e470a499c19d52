// Trains a small regression model to take the dot product of two unit vectors, and reports how far
// off it is on fresh data
package main

import (
	"flag"
	"log"

	"github.com/chewxy/math32"
	"github.com/prkl/ann"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/initializers"
	"gonum.org/v1/gonum/floats"
)

func main() {
	numTrain := flag.Int("training-pairs", 25000, "Number of generated training pairs")
	numEval := flag.Int("evaluation-pairs", 10000, "Number of generated evaluation pairs")
	epochs := flag.Int("epochs", 50, "Number of epochs")
	seed := flag.Int64("seed", 0, "PRNG seed (0 uses the time)")

	flag.Parse()

	if *numTrain < 1 || *numEval < 1 || *epochs < 1 {
		log.Fatalf("pairs and epochs must be at least 1")
	}

	settings := ann.DefaultSettings()
	settings.EarlyExit = true
	settings.LossEdge = 0.001
	settings.Adaptive = false
	settings.GradLimit = 1
	settings.BaseRate = 0.01

	r := initializers.NewRNG(*seed)

	m := new(ann.Model)
	for _, l := range []struct {
		size int
		act  activations.Kind
	}{
		{6, activations.Linear},
		{64, activations.ReLU},
		{32, activations.ReLU},
		{1, activations.Linear},
	} {
		d, err := m.AddDenseLayer(l.size, r)
		if err != nil {
			log.Fatalf("failed to build model: %v", err)
		}
		d.ActivationFunc = l.act
	}

	res, err := m.Train(ann.TrainArgs{
		Data:     ann.GenerateDotSet(*numTrain, r),
		Epochs:   *epochs,
		Settings: &settings,
		Update: func(e ann.Result) {
			log.Printf("epoch=%d rate=%g loss=%g snapshot=%t elapsed=%s", e.Epoch, e.Rate, e.Loss, e.Snapshot, e.Elapsed)
		},
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("run=%s stop=%s best_epoch=%d best_loss=%g", res.RunID, res.Stop, res.BestEpoch, res.BestLoss)

	eval := ann.GenerateDotSet(*numEval, r)
	diffs := make([]float64, eval.Len())
	for i, p := range eval.Pairs() {
		outs, err := m.Predict(p.Input)
		if err != nil {
			log.Fatalf("forward propagation failed on pair %d: %v", i, err)
		}

		diffs[i] = float64(math32.Abs(outs[0] - p.Output[0]))
	}

	log.Printf("difference avg=%.6f min=%.6f max=%.6f",
		floats.Sum(diffs)/float64(len(diffs)), floats.Min(diffs), floats.Max(diffs))
}
