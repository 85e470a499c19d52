package ann

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/prkl/ann/initializers"
	"github.com/prkl/ann/utils"
)

const (
	// maxSetWidth limits the widths a set file may declare
	maxSetWidth = 1 << 24

	// maxSetPairs limits the pair count a set file may declare
	maxSetPairs = 1 << 30
)

// Pair is a single example: an input vector and the expected output for it
type Pair struct {
	Input  []float32
	Output []float32
}

func (p Pair) MaxInputIndex() int {
	return maxIndex(p.Input)
}

func (p Pair) MinInputIndex() int {
	return minIndex(p.Input)
}

func (p Pair) MaxOutputIndex() int {
	return maxIndex(p.Output)
}

func (p Pair) MinOutputIndex() int {
	return minIndex(p.Output)
}

// Set is a dataset of Pairs that all have the same input and output widths. Pairs can only be
// added, never changed.
type Set struct {
	numInputs  int
	numOutputs int
	pairs      []Pair
}

// NewSet returns an empty Set with the given widths. It panics if either is negative.
func NewSet(numInputs, numOutputs int) *Set {
	if numInputs < 0 || numOutputs < 0 {
		panic(errors.Errorf("Can't make set with widths %d, %d", numInputs, numOutputs))
	}

	return &Set{numInputs: numInputs, numOutputs: numOutputs}
}

func (s *Set) NumInputs() int {
	return s.numInputs
}

func (s *Set) NumOutputs() int {
	return s.numOutputs
}

// Len returns the number of pairs in the Set
func (s *Set) Len() int {
	return len(s.pairs)
}

// Pair returns the pair at index i. Its slices belong to the Set and must not be modified.
func (s *Set) Pair(i int) Pair {
	return s.pairs[i]
}

// Pairs returns all of the pairs, in order. The slice is a copy, but the vectors are not.
func (s *Set) Pairs() []Pair {
	ps := make([]Pair, len(s.pairs))
	copy(ps, s.pairs)
	return ps
}

// Add appends a copy of the given vectors as a new pair
func (s *Set) Add(input, output []float32) error {
	if len(input) != s.numInputs {
		return &DimensionError{"Input width", s.numInputs, len(input)}
	} else if len(output) != s.numOutputs {
		return &DimensionError{"Output width", s.numOutputs, len(output)}
	} else if s.numInputs+s.numOutputs == 0 {
		return errors.Errorf("Can't add pair to a set with no inputs or outputs")
	}

	s.pairs = append(s.pairs, Pair{cloneFloats(input), cloneFloats(output)})
	return nil
}

// Write writes the Set in the set format
func (s *Set) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	out := utils.NewWriter(bw)

	out.Int(s.numInputs)
	out.Int(s.numOutputs)
	out.Int(len(s.pairs))

	for _, p := range s.pairs {
		out.Float32s(p.Input)
		out.Float32s(p.Output)
	}

	if err := out.Err(); err != nil {
		return errors.Wrapf(err, "Failed to write set")
	} else if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to write set")
	}

	return nil
}

// WriteFile writes the Set to a file at the given path, replacing it if it exists.
func (s *Set) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to open file for writing: %s", path)
	}

	if err = s.Write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "Failed to write file %s", path)
	}

	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "Failed to close file %s", path)
	}

	return nil
}

// ReadSet reads a Set in the set format. The pair count isn't trusted for allocation; pairs are
// appended as they are read, so a truncated file fails with io.ErrUnexpectedEOF instead. Pairs
// must carry at least one value, so every declared pair consumes input.
func ReadSet(r io.Reader) (*Set, error) {
	in := utils.NewReader(bufio.NewReader(r))

	numInputs := in.Count("Input width", maxSetWidth)
	numOutputs := in.Count("Output width", maxSetWidth)
	numPairs := in.Count("Pair count", maxSetPairs)
	if err := in.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed to read set header")
	} else if numInputs+numOutputs == 0 && numPairs != 0 {
		return nil, errors.Errorf("Set declares %d pairs with no inputs or outputs", numPairs)
	}

	s := NewSet(numInputs, numOutputs)
	for i := 0; i < numPairs; i++ {
		p := Pair{make([]float32, numInputs), make([]float32, numOutputs)}
		in.Float32s(p.Input)
		in.Float32s(p.Output)

		if err := in.Err(); err != nil {
			return nil, errors.Wrapf(err, "Failed to read pair %d of %d", i, numPairs)
		}

		s.pairs = append(s.pairs, p)
	}

	return s, nil
}

// LoadSet reads the set file at the given path
func LoadSet(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open file for reading: %s", path)
	}

	defer f.Close()

	s, err := ReadSet(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to load set %s", path)
	}

	return s, nil
}

// GenerateDotSet returns a regression Set of n pairs, each with 6 inputs and 1 output. The inputs
// are two random unit vectors in 3 dimensions, and the output is their dot product.
func GenerateDotSet(n int, r *rand.Rand) *Set {
	s := NewSet(6, 1)
	if n <= 0 {
		return s
	}

	s.pairs = make([]Pair, 0, n)
	gen := initializers.Uniform().Bounds(-1, 1)

	for i := 0; i < n; i++ {
		a, b := randomUnit3(r, gen), randomUnit3(r, gen)

		in := make([]float32, 0, 6)
		in = append(in, a[:]...)
		in = append(in, b[:]...)

		dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
		s.pairs = append(s.pairs, Pair{in, []float32{dot}})
	}

	return s
}

// randomUnit3 returns a vector with components drawn from [-1, 1), scaled to length 1
func randomUnit3(r *rand.Rand, gen initializers.RNG) [3]float32 {
	for {
		var v [3]float32
		for i := range v {
			v[i] = gen.Gen(r)
		}

		l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		if l < 1e-6 {
			continue
		}

		for i := range v {
			v[i] /= l
		}
		return v
	}
}
