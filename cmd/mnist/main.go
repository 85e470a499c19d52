// Identifies the handwritten digit in an image, using a model trained on MNIST
package main

import (
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/prkl/ann"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	imgSide    int = 28
	imgSize    int = imgSide * imgSide
	numOptions int = 10 // 0->9
)

func main() {
	modelPath := flag.String("model", "", "Path to MNIST digits model, needs to have 784 inputs and 10 outputs (.prklmodel file)")
	inputPath := flag.String("input", "", "Path to input image file, will be scaled to 28x28 for inference")

	flag.Parse()

	if *modelPath == "" || *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	m, err := ann.Load(*modelPath)
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	if m.InputSize() != imgSize {
		log.Fatalf("model input size is %d, not %d: incompatible with MNIST digits", m.InputSize(), imgSize)
	} else if m.OutputSize() != numOptions {
		log.Fatalf("model output size is %d, not %d: incompatible with MNIST digits", m.OutputSize(), numOptions)
	}

	inputs, err := loadImage(*inputPath)
	if err != nil {
		log.Fatalf("failed to load input image: %v", err)
	}

	outs, err := m.Predict(inputs)
	if err != nil {
		log.Fatalf("inference failed: %v", err)
	}

	digit := m.Output().MaxActivationIndex()
	certainty := math32.Max(0, math32.Min(100, outs[digit]*100))

	log.Printf("The image is identified as the digit %d with a certainty of %.2f%%", digit, certainty)
}

// loadImage decodes the image at path, converts it to grayscale and scales it to 28x28, returning
// its pixels in row-major order, in [0, 1]
func loadImage(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open image %q", path)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode image %q", path)
	}

	log.Printf("input=%s format=%s width=%d height=%d", path, format, src.Bounds().Dx(), src.Bounds().Dy())

	dst := image.NewGray(image.Rect(0, 0, imgSide, imgSide))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	inputs := make([]float32, imgSize)
	for y := 0; y < imgSide; y++ {
		for x := 0; x < imgSide; x++ {
			inputs[y*imgSide+x] = float32(dst.GrayAt(x, y).Y) / 255
		}
	}

	return inputs, nil
}
