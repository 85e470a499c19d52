package main

import (
	"strings"
	"testing"
)

func line(label string, pixel string) string {
	vs := make([]string, imgSize+1)
	vs[0] = label
	for i := 1; i < len(vs); i++ {
		vs[i] = pixel
	}
	return strings.Join(vs, ",")
}

func TestConvert(t *testing.T) {
	header := "label," + strings.TrimPrefix(line("", "pixel"), ",")
	input := strings.Join([]string{header, line("3", "255"), "", line("0", "0")}, "\n")

	set, err := convert(strings.NewReader(input))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if set.Len() != 2 {
		t.Fatalf("expected 2 pairs, got %d", set.Len())
	}

	p := set.Pair(0)
	if p.MaxOutputIndex() != 3 || p.Output[3] != 1 {
		t.Errorf("first label: got outputs %v", p.Output)
	}
	if p.Input[0] != 1 || p.Input[imgSize-1] != 1 {
		t.Errorf("first image not scaled to 1: %v, %v", p.Input[0], p.Input[imgSize-1])
	}

	p = set.Pair(1)
	if p.MaxOutputIndex() != 0 || p.Input[10] != 0 {
		t.Errorf("second pair: label %d, pixel %v", p.MaxOutputIndex(), p.Input[10])
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short line", "1,2,3"},
		{"label out of range", line("10", "0")},
		{"negative label", line("-1", "0")},
		{"pixel out of range", line("1", "256")},
		{"bad pixel", line("1", "x")},
		{"bad label after header", line("1", "0") + "\n" + line("y", "0")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := convert(strings.NewReader(test.input)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
