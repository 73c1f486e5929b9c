package samples

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arnonbruno/valley-stability/topo"
	"github.com/pkg/errors"
)

// ReadCSV parses "x,y,value" rows.
//
// A first row whose x column is not an integer is treated
// as a header. Lines starting with '#' are comments.
func ReadCSV(r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	rep := &Report{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				rep.Skipped++
				continue
			}
			return nil, errors.Wrap(err, "read CSV samples")
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		sample, ok := parseCSVRecord(record)
		if first && !ok && isHeader(record) {
			first = false
			continue
		}
		first = false
		if !ok {
			rep.Skipped++
			continue
		}
		rep.Samples = append(rep.Samples, sample)
	}
	return finish("read CSV samples", rep)
}

func isHeader(record []string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(record[0]))
	return err != nil
}

func parseCSVRecord(record []string) (topo.Sample, bool) {
	if len(record) < 3 {
		return topo.Sample{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return topo.Sample{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return topo.Sample{}, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return topo.Sample{}, false
	}
	return topo.Sample{X: x, Y: y, Value: v}, true
}
