package ann

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prkl/ann/costfuncs"
	"github.com/prkl/ann/utils"
)

// Magic is the first value of every model file
const Magic uint64 = 248912394734577843

// Versions of the model format. Each adds to the one before it; files of any version up to
// LatestVersion can be read, but only LatestVersion is written.
const (
	// VersionInitial stores only the dimensions and parameters of each layer
	VersionInitial uint64 = 1

	// VersionLayerParams adds the activation function and leaky slope of each layer
	VersionLayerParams uint64 = 2

	// VersionEvaluationTags adds the loss function and evaluation type of the model
	VersionEvaluationTags uint64 = 3

	LatestVersion = VersionEvaluationTags
)

// limits on what a model file may ask to allocate
const (
	maxLayers      = 1 << 16
	maxLayerSize   = 1 << 24
	maxLayerParams = 1 << 28
)

// Write writes the Model in the latest version of the model format.
func (m *Model) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	out := utils.NewWriter(bw)

	out.Uint64(Magic)
	out.Uint64(LatestVersion)
	out.Uint64(uint64(m.LossFunction))
	out.Uint64(uint64(m.EvaluationType))
	out.Int(len(m.layers))

	for _, l := range m.layers {
		l.write(out)
	}

	if err := out.Err(); err != nil {
		return errors.Wrapf(err, "Failed to write model")
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to write model")
	}

	return nil
}

// WriteFile writes the Model to a file at the given path, replacing it if it exists.
func (m *Model) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to open file for writing: %s", path)
	}

	if err = m.Write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "Failed to write file %s", path)
	}

	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "Failed to close file %s", path)
	}

	return nil
}

// ReadModel reads a Model in any version of the model format up to LatestVersion. Models from
// versions without evaluation tags are Regression models using mean squared error, and their
// layers use the default activation function.
func ReadModel(r io.Reader) (*Model, error) {
	in := utils.NewReader(bufio.NewReader(r))

	magic := in.Uint64()
	if err := in.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed to read model header")
	} else if magic != Magic {
		return nil, ErrBadMagic
	}

	version := in.Uint64()
	if err := in.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed to read model header")
	} else if version > LatestVersion {
		return nil, errors.Wrapf(ErrVersionTooNew, "version %d > %d", version, LatestVersion)
	} else if version < VersionInitial {
		return nil, errors.Errorf("Invalid model version %d", version)
	}

	m := new(Model)
	if version >= VersionEvaluationTags {
		m.LossFunction = costfuncs.LossFunction(in.Uint64())
		m.EvaluationType = costfuncs.EvaluationType(in.Uint64())

		if in.Err() == nil {
			if !m.LossFunction.Valid() {
				return nil, errors.Wrapf(costfuncs.ErrUnknownLoss, "tag %d", uint64(m.LossFunction))
			} else if !m.EvaluationType.Valid() {
				return nil, errors.Wrapf(costfuncs.ErrUnknownEvaluation, "tag %d", uint64(m.EvaluationType))
			}
		}
	}

	numLayers := in.Count("Layer count", maxLayers)
	if err := in.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed to read model header")
	}

	for i := 0; i < numLayers; i++ {
		kind := LayerKind(in.Uint64())
		if err := in.Err(); err != nil {
			return nil, errors.Wrapf(err, "Failed to read layer %d", i)
		} else if err := kind.supported(); err != nil {
			return nil, errors.Wrapf(err, "Can't load layer %d", i)
		}

		l, err := readDenseLayer(in, version)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read layer %d", i)
		}

		if err = m.AddLayer(l); err != nil {
			return nil, errors.Wrapf(err, "Invalid model")
		}
	}

	return m, nil
}

// Load reads the model file at the given path
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open file for reading: %s", path)
	}

	defer f.Close()

	m, err := ReadModel(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to load model %s", path)
	}

	return m, nil
}
