package activations

import (
	"github.com/pkg/errors"
)

var names = [NumKinds]string{
	Linear:    "linear",
	Sigmoid:   "sigmoid",
	LeakyReLU: "leaky_relu",
	ReLU:      "relu",
	Tanh:      "tanh",
	Swish:     "swish",
}

var byName map[string]Kind

func init() {
	byName = make(map[string]Kind, len(names))
	for k, s := range names {
		if _, ok := byName[s]; ok {
			panic(errors.Errorf("Activation function name %q registered twice", s))
		}

		byName[s] = Kind(k)
	}
}

// Parse returns the Kind with the given name. The empty string is not accepted; callers that want
// a default should substitute it themselves.
func Parse(name string) (Kind, error) {
	k, ok := byName[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownActivation, "%q", name)
	}

	return k, nil
}

// Names returns the names of all activation functions, in Kind order.
func Names() []string {
	ns := make([]string, len(names))
	copy(ns, names[:])
	return ns
}
