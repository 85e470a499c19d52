package ann

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables, and are usually returned wrapped with
// more context; compare against them with errors.Cause or errors.Is.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned.
var (
	ErrTooFewLayers         = Error{"Model has fewer than 2 layers"}
	ErrDimensionMismatch    = Error{"Dimension mismatch"}
	ErrUnsupportedLayer     = Error{"Unsupported layer kind"}
	ErrBadMagic             = Error{"Invalid model, magic mismatch"}
	ErrVersionTooNew        = Error{"Unsupported model version, please update this software to the latest version in order to load this model"}
	ErrNumericalInstability = Error{"Numerical instability"}
	ErrEmptySet             = Error{"Set has no pairs"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// NumericalError is returned when a NaN shows up in the activations of a layer. It matches
// ErrNumericalInstability with errors.Is.
type NumericalError struct {
	Layer  int
	Neuron int
}

func (err *NumericalError) Error() string {
	return fmt.Sprintf("NaN detected in activation %d of layer %d", err.Neuron, err.Layer)
}

func (err *NumericalError) Is(target error) bool {
	return target == ErrNumericalInstability
}

// DimensionError is returned when the width of some vector or layer doesn't match what it is
// being used with. It matches ErrDimensionMismatch with errors.Is.
type DimensionError struct {
	// What is being checked, for example "input width"
	What string
	Want int
	Got  int
}

func (err *DimensionError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %d, got %d", err.What, err.Want, err.Got)
}

func (err *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
