// Trains a model described by a JSON config on a dataset, and optionally writes it out
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/prkl/ann"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/hyperparams"
	"github.com/prkl/ann/initializers"
)

func main() {
	defaults := ann.DefaultSettings()

	configPath := flag.String("config", "", "Path to model config (.json file); layer activations are one of: "+
		strings.Join(activations.Names(), ", "))
	trainingPath := flag.String("training-set", "", "Path to training set (.prklset file)")
	evaluationPath := flag.String("evaluation-set", "", "Path to evaluation set (.prklset file)")
	outputPath := flag.String("output", "", "Path to output file (.prklmodel file)")
	epochs := flag.Int("epochs", 10, "Number of epochs")
	seed := flag.Int64("seed", 0, "PRNG seed for weight initialization (0 uses the time)")

	baseRate := flag.Float64("learning-rate", float64(defaults.BaseRate), "Learning rate (for ALR, this is the base rate)")
	alr := flag.Bool("alr", defaults.Adaptive, "Adaptive learning rate enabled")
	minRate := flag.Float64("alr-min-rate", float64(defaults.MinRate), "Adaptive learning rate: minimum rate")
	lossEdge := flag.Float64("alr-loss-edge", float64(defaults.LossEdge), "Adaptive learning rate: loss edge")
	ease := flag.Bool("alr-ease", defaults.Ease, "Adaptive learning rate: ease")
	easeAlpha := flag.Float64("alr-ease-alpha", float64(defaults.EaseAlpha), "Adaptive learning rate: ease alpha")
	gradLimit := flag.Float64("grad-limit", float64(defaults.GradLimit), "Maximum gradient amplitude")
	rateSteps := flag.String("rate-steps", "", "Step schedule instead of ALR, as epoch:rate pairs starting from -learning-rate (e.g. 10:0.005,20:0.001)")

	flag.Parse()

	if *configPath == "" || *trainingPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *epochs < 1 {
		log.Fatalf("at least 1 epoch is required (got %d)", *epochs)
	}

	settings := defaults
	settings.BaseRate = float32(*baseRate)
	settings.Adaptive = *alr
	settings.MinRate = float32(*minRate)
	settings.LossEdge = float32(*lossEdge)
	settings.Ease = *ease
	settings.EaseAlpha = float32(*easeAlpha)
	settings.GradLimit = float32(*gradLimit)

	if err := settings.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	var schedule ann.RateSchedule
	if *rateSteps != "" {
		st, err := hyperparams.ParseSteps(settings.BaseRate, *rateSteps)
		if err != nil {
			log.Fatalf("invalid rate steps: %v", err)
		}
		schedule = st
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	data, err := ann.LoadSet(*trainingPath)
	if err != nil {
		log.Fatalf("failed to load training set: %v", err)
	}

	var heldOut *ann.Set
	if *evaluationPath != "" {
		if heldOut, err = ann.LoadSet(*evaluationPath); err != nil {
			log.Fatalf("failed to load evaluation set: %v", err)
		}
	}

	log.Printf("config=%s training_set=%s evaluation_set=%s output=%s epochs=%d",
		*configPath, *trainingPath, *evaluationPath, *outputPath, *epochs)
	log.Printf("grad_limit=%g alr=%t alr_loss_edge=%g alr_base_rate=%g alr_min_rate=%g alr_ease=%t alr_ease_alpha=%g",
		settings.GradLimit, settings.Adaptive, settings.LossEdge, settings.BaseRate,
		settings.MinRate, settings.Ease, settings.EaseAlpha)
	if schedule != nil {
		log.Printf("rate_steps=%s", *rateSteps)
	}

	m, err := ann.FromConfig(cfg, initializers.NewRNG(*seed))
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("layers=%d inputs=%d outputs=%d pairs=%d", m.NumLayers(), m.InputSize(), m.OutputSize(), data.Len())

	res, err := m.Train(ann.TrainArgs{
		Data:     data,
		HeldOut:  heldOut,
		Epochs:   *epochs,
		Settings: &settings,
		Schedule: schedule,
		Update:   logResult,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	log.Printf("run=%s stop=%s epochs=%d best_epoch=%d best_loss=%g", res.RunID, res.Stop, res.Epochs, res.BestEpoch, res.BestLoss)
	if res.Instability != nil {
		log.Printf("instability: %v", res.Instability)
	}

	if heldOut != nil {
		rate, err := m.Evaluate(heldOut)
		if err != nil {
			log.Fatalf("evaluation failed: %v", err)
		}

		log.Printf("success_rate=%.2f%% pairs=%d", rate*100, heldOut.Len())
	}

	if *outputPath != "" {
		if err := m.WriteFile(*outputPath); err != nil {
			log.Fatalf("failed to write model: %v", err)
		}

		log.Printf("wrote model to %s", *outputPath)
	}
}

func loadConfig(path string) (ann.Config, error) {
	var cfg ann.Config

	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "Failed to open config file %q", path)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "Failed to decode config file %q", path)
	}

	return cfg, cfg.Validate()
}

func logResult(r ann.Result) {
	if r.HasSuccessRate {
		log.Printf("epoch=%d rate=%g loss=%g success_rate=%.2f%% snapshot=%t elapsed=%s",
			r.Epoch, r.Rate, r.Loss, r.SuccessRate*100, r.Snapshot, r.Elapsed)
		return
	}

	log.Printf("epoch=%d rate=%g loss=%g snapshot=%t elapsed=%s", r.Epoch, r.Rate, r.Loss, r.Snapshot, r.Elapsed)
}
