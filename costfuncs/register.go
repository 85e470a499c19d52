package costfuncs

import (
	"strconv"

	"github.com/pkg/errors"
)

// EvaluationType is the task family a model is trained for. It decides which CostFunction is used
// and whether the output layer is passed through softmax. Its numeric value is part of the model
// format.
type EvaluationType uint64

const (
	Regression EvaluationType = iota
	MulticlassClassification
	BinaryClassification
	MultilabelClassification
)

// LossFunction picks the cost function for Regression models. It is ignored for the
// classification types. Its numeric value is part of the model format.
type LossFunction uint64

const (
	MeanSquaredError LossFunction = iota
	MeanAbsoluteError
)

var (
	ErrUnknownEvaluation = errors.New("Unknown evaluation type")
	ErrUnknownLoss       = errors.New("Unknown loss function")
)

var evaluationNames = []string{
	Regression:               "regression",
	MulticlassClassification: "multiclass_classification",
	BinaryClassification:     "binary_classification",
	MultilabelClassification: "multilabel_classification",
}

var lossNames = []string{
	MeanSquaredError:  "mse",
	MeanAbsoluteError: "mae",
}

func (e EvaluationType) Valid() bool {
	return int(e) < len(evaluationNames)
}

func (e EvaluationType) String() string {
	if !e.Valid() {
		return "unknown(" + strconv.FormatUint(uint64(e), 10) + ")"
	}
	return evaluationNames[e]
}

// Softmax returns whether outputs of a model with this evaluation type are passed through softmax
func (e EvaluationType) Softmax() bool {
	return e == MulticlassClassification
}

func (l LossFunction) Valid() bool {
	return int(l) < len(lossNames)
}

func (l LossFunction) String() string {
	if !l.Valid() {
		return "unknown(" + strconv.FormatUint(uint64(l), 10) + ")"
	}
	return lossNames[l]
}

// ParseEvaluation returns the EvaluationType with the given name
func ParseEvaluation(name string) (EvaluationType, error) {
	for i, s := range evaluationNames {
		if s == name {
			return EvaluationType(i), nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownEvaluation, "%q", name)
}

// ParseLoss returns the LossFunction with the given name. "mean_squared_error" and
// "mean_absolute_error" are accepted as well as the short names.
func ParseLoss(name string) (LossFunction, error) {
	switch name {
	case "mean_squared_error":
		return MeanSquaredError, nil
	case "mean_absolute_error":
		return MeanAbsoluteError, nil
	}

	for i, s := range lossNames {
		if s == name {
			return LossFunction(i), nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownLoss, "%q", name)
}

// For returns the CostFunction used by models with the given evaluation type and loss function.
// The loss function only matters for Regression.
func For(eval EvaluationType, loss LossFunction) (CostFunction, error) {
	switch eval {
	case Regression:
		switch loss {
		case MeanSquaredError:
			return MSE(), nil
		case MeanAbsoluteError:
			return Abs(), nil
		}
		return nil, errors.Wrapf(ErrUnknownLoss, "tag %d", uint64(loss))
	case MulticlassClassification:
		return CrossEntropy(), nil
	case BinaryClassification, MultilabelClassification:
		return BinaryCrossEntropy(), nil
	}

	return nil, errors.Wrapf(ErrUnknownEvaluation, "tag %d", uint64(eval))
}
