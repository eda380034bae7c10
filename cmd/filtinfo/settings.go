package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/cwbudde/algo-blosc/codec"
)

// settings describes one filtinfo run. The json tags double as the keys of
// the YAML settings file.
type settings struct {
	TypeSize    int      `json:"typesize"`
	BlockSize   int      `json:"blocksize"`
	Codec       string   `json:"codec"`
	Pipelines   []string `json:"pipelines"`
	BlockShape  []int    `json:"blockshape,omitempty"`
	Input       string   `json:"input,omitempty"`
	Dataset     string   `json:"dataset,omitempty"`
	DatasetSize int      `json:"size,omitempty"`
	Workers     int      `json:"workers,omitempty"`
}

func defaultSettings() settings {
	return settings{
		TypeSize:    4,
		BlockSize:   256 << 10,
		Codec:       "zstd",
		Pipelines:   []string{"shuffle"},
		Dataset:     "arange",
		DatasetSize: 4 << 20,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// merge overlays the non-zero fields of a YAML or JSON document onto s.
func (s *settings) merge(doc []byte) error {
	var f settings
	if err := yaml.UnmarshalStrict(doc, &f); err != nil {
		return err
	}
	if f.TypeSize != 0 {
		s.TypeSize = f.TypeSize
	}
	if f.BlockSize != 0 {
		s.BlockSize = f.BlockSize
	}
	if f.Codec != "" {
		s.Codec = f.Codec
	}
	if len(f.Pipelines) != 0 {
		s.Pipelines = f.Pipelines
	}
	if len(f.BlockShape) != 0 {
		s.BlockShape = f.BlockShape
	}
	if f.Input != "" {
		s.Input = f.Input
	}
	if f.Dataset != "" {
		s.Dataset = f.Dataset
	}
	if f.DatasetSize != 0 {
		s.DatasetSize = f.DatasetSize
	}
	if f.Workers != 0 {
		s.Workers = f.Workers
	}
	return nil
}

func (s *settings) validate() error {
	if s.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %d", s.BlockSize)
	}
	if !slices.Contains(codec.Names(), s.Codec) {
		return fmt.Errorf("unknown codec %q (have %s)", s.Codec, strings.Join(codecNames(), ", "))
	}
	if len(s.Pipelines) == 0 {
		return errors.New("no pipeline given")
	}
	return nil
}

func datasetNames() []string {
	names := make([]string, 0, len(datasets))
	for n := range datasets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func codecNames() []string {
	return codec.Names()
}

// load returns the input file or the synthetic dataset.
func (s *settings) load() ([]byte, error) {
	if s.Input != "" {
		return os.ReadFile(s.Input)
	}
	gen, ok := datasets[s.Dataset]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q (have %s)", s.Dataset, strings.Join(datasetNames(), ", "))
	}
	if s.DatasetSize <= 0 {
		return nil, fmt.Errorf("dataset size must be positive, got %d", s.DatasetSize)
	}
	return gen(s.DatasetSize), nil
}

func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	dims := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid shape %q", s)
		}
		dims[i] = v
	}
	return dims, nil
}
