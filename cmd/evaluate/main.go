// Reports how often a saved model gets the pairs of a dataset right
package main

import (
	"flag"
	"log"
	"os"

	"github.com/prkl/ann"
)

func main() {
	modelPath := flag.String("model", "", "Path to model (.prklmodel file)")
	evaluationPath := flag.String("evaluation-set", "", "Path to evaluation set (.prklset file)")

	flag.Parse()

	if *modelPath == "" || *evaluationPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	set, err := ann.LoadSet(*evaluationPath)
	if err != nil {
		log.Fatalf("failed to load evaluation set: %v", err)
	}
	log.Printf("evaluation_set=%s inputs=%d outputs=%d pairs=%d", *evaluationPath, set.NumInputs(), set.NumOutputs(), set.Len())

	m, err := ann.Load(*modelPath)
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}
	log.Printf("model=%s layers=%d evaluation=%s loss=%s", *modelPath, m.NumLayers(), m.EvaluationType, m.LossFunction)

	if m.InputSize() != set.NumInputs() || m.OutputSize() != set.NumOutputs() {
		log.Fatalf("incompatible evaluation set: model is %d -> %d, set is %d -> %d",
			m.InputSize(), m.OutputSize(), set.NumInputs(), set.NumOutputs())
	}

	rate, err := m.Evaluate(set)
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}

	correct := int(rate*float32(set.Len()) + 0.5)
	log.Printf("success_rate=%.2f%% correct=%d misses=%d", rate*100, correct, set.Len()-correct)
}
