// Package ann is a small feed-forward neural network engine. It builds models out of dense
// layers, trains them with backpropagation and an adaptive learning rate, and stores models and
// datasets in a compact big-endian binary format.
//
// # Creating Models
//
// A Model is a chain of layers, the first being the input layer and the last the output layer. It
// can be built from a list of sizes:
//
//	rng := initializers.NewRNG(seed)
//	m, err := ann.New([]int{6, 64, 32, 1}, rng)
//
// layer by layer, which allows configuring each one:
//
//	m := new(ann.Model)
//	m.AddDenseLayer(6, rng)
//	hl, _ := m.AddDenseLayer(64, rng)
//	hl.ActivationFunc = activations.ReLU
//	out, _ := m.AddDenseLayer(1, rng)
//	out.ActivationFunc = activations.Linear
//
// or from a Config, which is usually decoded from JSON. Layers use the swish activation function
// by default. The activation functions are in the subpackage "activations"; the loss functions,
// along with the evaluation types that select them, are in "costfuncs".
//
// # Training and Evaluating
//
// Training is done with Train, with the type TrainArgs used as a proxy for the optional arguments
// that are available in other languages:
//
//	res, err := m.Train(ann.TrainArgs{
//		Data:   set,
//		Epochs: 50,
//		Update: func(r ann.Result) { log.Printf("epoch=%d loss=%g", r.Epoch, r.Loss) },
//	})
//
// After every epoch, the learning rate is taken from a RateSchedule (see the subpackage
// "hyperparams"), and the Model is saved if it is the best so far. Training stops early if the
// loss diverges, and always finishes by restoring the best saved Model.
//
// Evaluate gives the fraction of a Set for which the largest output is at the same index as the
// largest expected output.
//
// # Saving and Loading
//
// Models are written with WriteFile and read with Load; Sets with Set.WriteFile and LoadSet. Both
// formats are made of unsigned 64-bit integers and 32-bit floats in network byte order, so
// parameters are restored exactly.
package ann
