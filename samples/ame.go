package samples

import (
	"io"
	"strconv"
	"strings"

	"github.com/arnonbruno/valley-stability/topo"
	"github.com/pkg/errors"
)

// Column ranges of the AME fixed-width table.
const (
	ameMinLineLength = 67

	ameNStart, ameNEnd   = 4, 9
	ameZStart, ameZEnd   = 9, 14
	ameBEStart, ameBEEnd = 54, 67
)

// ReadAME parses an AME atomic mass table.
//
// Data rows begin two lines after the column header (the
// line naming both "N-Z" and "MASS EXCESS"). Each sample
// has X set to N, Y set to Z and Value set to the binding
// energy per nucleon in MeV. Estimated values (marked with
// '#') and uncomputable ones ('*') are skipped, as are rows
// that fail to parse.
func ReadAME(r io.Reader) (*Report, error) {
	text, err := readAll(r, "read AME table")
	if err != nil {
		return nil, err
	}
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if strings.Contains(line, "N-Z") && strings.Contains(line, "MASS EXCESS") {
			start = i + 2
			break
		}
	}
	if start < 0 {
		return nil, errors.New("read AME table: missing column header")
	}

	rep := &Report{}
	for i := start; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if len(line) < ameMinLineLength {
			continue
		}
		sample, ok := parseAMELine(line)
		if !ok {
			rep.Skipped++
			continue
		}
		rep.Samples = append(rep.Samples, sample)
	}
	return finish("read AME table", rep)
}

func parseAMELine(line string) (topo.Sample, bool) {
	nField := strings.TrimSpace(line[ameNStart:ameNEnd])
	zField := strings.TrimSpace(line[ameZStart:ameZEnd])
	beField := line[ameBEStart:ameBEEnd]
	if strings.ContainsAny(beField, "*#") {
		return topo.Sample{}, false
	}
	n, err := strconv.Atoi(nField)
	if err != nil {
		return topo.Sample{}, false
	}
	z, err := strconv.Atoi(zField)
	if err != nil {
		return topo.Sample{}, false
	}
	kev, err := strconv.ParseFloat(strings.TrimSpace(beField), 64)
	if err != nil {
		return topo.Sample{}, false
	}
	return topo.Sample{X: n, Y: z, Value: kev / 1000}, true
}
