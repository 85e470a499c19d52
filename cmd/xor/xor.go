package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/prkl/ann"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/costfuncs"
	"github.com/prkl/ann/hyperparams"
	"github.com/prkl/ann/initializers"
)

const (
	// main hyperparameters
	learningRate float32 = 0.5
	maxEpochs    int     = 3000
	statusEvery  int     = 500
)

func dataset() *ann.Set {
	set := ann.NewSet(2, 1)

	for _, p := range [][2][]float32{
		{{-1, -1}, {0}},
		{{-1, 1}, {1}},
		{{1, -1}, {1}},
		{{1, 1}, {0}},
	} {
		if err := set.Add(p[0], p[1]); err != nil {
			panic(err.Error())
		}
	}

	return set
}

func train(m *ann.Model, set *ann.Set) {
	settings := ann.DefaultSettings()
	settings.EarlyExit = false

	log.Println("Starting training...")
	res, err := m.Train(ann.TrainArgs{
		Data:     set,
		Epochs:   maxEpochs,
		Settings: &settings,
		Schedule: hyperparams.Constant(learningRate),
		Update: func(r ann.Result) {
			if r.Epoch%statusEvery == 0 {
				log.Printf("epoch=%d loss=%g", r.Epoch, r.Loss)
			}
		},
	})
	if err != nil {
		panic(err.Error())
	}

	log.Printf("Done training! stop=%s best_loss=%g", res.Stop, res.BestLoss)
}

func test(m *ann.Model, set *ann.Set) {
	log.Println("Testing...")

	var correct int
	for _, p := range set.Pairs() {
		outs, err := m.Predict(p.Input)
		if err != nil {
			panic(err.Error())
		}

		if ann.CorrectRound(outs, p.Output) {
			correct++
		}
		log.Printf("in=%v want=%v got=%.4f", p.Input, p.Output[0], outs[0])
	}

	log.Printf("correct=%d/%d", correct, set.Len())
}

func main() {
	seed := flag.Int64("seed", 0, "PRNG seed (0 uses the time)")
	flag.Parse()

	set := dataset()

	log.Println("Setting up model...")
	m, err := ann.New([]int{2, 4, 1}, initializers.NewRNG(*seed))
	if err != nil {
		panic(err.Error())
	}
	m.EvaluationType = costfuncs.BinaryClassification
	m.Hidden(0).(*ann.DenseLayer).ActivationFunc = activations.Tanh
	m.Output().(*ann.DenseLayer).ActivationFunc = activations.Sigmoid

	train(m, set)
	test(m, set)

	dir, err := os.MkdirTemp("", "xor")
	if err != nil {
		panic(err.Error())
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "xor.prklmodel")

	log.Println("Saving...")
	if err := m.WriteFile(path); err != nil {
		panic(err.Error())
	}

	log.Println("Loading...")
	if m, err = ann.Load(path); err != nil {
		panic(err.Error())
	}

	train(m, set)
	test(m, set)
}
