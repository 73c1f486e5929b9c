// Package samples reads chart samples from mass tables and
// CSV files.
package samples

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnonbruno/valley-stability/topo"
	"github.com/pkg/errors"
)

// A Report is the result of reading a sample source.
type Report struct {
	Samples []topo.Sample

	// Skipped counts data rows that could not be used.
	Skipped int
}

// ReadFile reads samples from a file, choosing the format
// from its extension.
//
// Files ending in ".csv" are read with ReadCSV, and every
// other file is treated as an AME mass table.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read samples")
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadAME(f)
}

func finish(name string, rep *Report) (*Report, error) {
	if len(rep.Samples) == 0 {
		return nil, errors.New(name + ": no usable samples")
	}
	return rep, nil
}

func readAll(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, name)
	}
	return string(data), nil
}
