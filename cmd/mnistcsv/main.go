// Converts the MNIST csv files (a label, followed by 784 pixel values on each line) to datasets
// that can be used for training and evaluation
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/prkl/ann"
)

const (
	imgSize    int = 784 // 28x28
	numClasses int = 10  // 0->9
)

func main() {
	inputPath := flag.String("input", "", "Path to the MNIST csv file")
	outputPath := flag.String("output", "", "Path to output file (.prklset file)")

	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("failed to open input: %v", err)
	}
	defer f.Close()

	set, err := convert(f)
	if err != nil {
		log.Fatalf("failed to convert %s: %v", *inputPath, err)
	}

	if err := set.WriteFile(*outputPath); err != nil {
		log.Fatalf("failed to write set: %v", err)
	}

	log.Printf("input=%s output=%s pairs=%d", *inputPath, *outputPath, set.Len())
}

// convert reads every line of r. A first line that starts with a non-numeric label is taken to be
// a header and skipped.
func convert(r io.Reader) (*ann.Set, error) {
	set := ann.NewSet(imgSize, numClasses)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; sc.Scan(); i++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		} else if i == 0 && isHeader(line) {
			continue
		}

		ins, outs, err := image(line)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse line %d", i+1)
		}

		if err := set.Add(ins, outs); err != nil {
			return nil, err
		}
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed to read input")
	}

	return set, nil
}

func isHeader(line string) bool {
	first := strings.SplitN(line, ",", 2)[0]
	_, err := strconv.Atoi(first)
	return err != nil
}

// returns the pixels of the image, scaled to [0, 1], and the one-hot encoding of its label
func image(str string) (ins, outs []float32, err error) {
	s := strings.Split(str, ",")

	if len(s) != imgSize+1 {
		return nil, nil, errors.Errorf("Can't get image, wrong number of values on line (had %d, should be %d)", len(s), imgSize+1)
	}

	class, err := strconv.Atoi(strings.TrimSpace(s[0]))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Couldn't parse value of classifier (given: %s)", s[0])
	} else if class < 0 || class >= numClasses {
		return nil, nil, errors.Errorf("Classifier is out of bounds (%d not in [0, %d))", class, numClasses)
	}

	outs = make([]float32, numClasses)
	outs[class] = 1

	ins = make([]float32, imgSize)
	for i := range ins {
		v, err := strconv.ParseUint(strings.TrimSpace(s[i+1]), 10, 8)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Couldn't parse value %d of line (given: %s)", i, s[i+1])
		}

		ins[i] = float32(v) / 255
	}

	return ins, outs, nil
}
