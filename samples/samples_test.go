package samples

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnonbruno/valley-stability/topo"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ameLine(n, z string, be string) string {
	buf := []byte(strings.Repeat(" ", 100))
	copy(buf[ameNStart:], fmt.Sprintf("%5s", n))
	copy(buf[ameZStart:], fmt.Sprintf("%5s", z))
	copy(buf[ameBEStart:], fmt.Sprintf("%13s", be))
	return string(buf)
}

func ameTable(rows ...string) string {
	lines := []string{
		"1    ATOMIC MASS EVALUATION",
		"",
		"0  N-Z    N    Z   A  EL    O     MASS EXCESS(keV)     BINDING ENERGY/A (keV)",
		"                                                       (keV)",
	}
	return strings.Join(append(lines, rows...), "\n") + "\n"
}

func TestReadAME(t *testing.T) {
	table := ameTable(
		ameLine("1", "1", "1112.2831"),
		ameLine("2", "2", "7073.9156"),
		ameLine("3", "2", "5348.0*"),
		ameLine("4", "3", "4500#"),
		ameLine("x", "3", "5000.0"),
		"too short",
		ameLine("30", "26", "8790.3548")+"\r",
	)
	rep, err := ReadAME(strings.NewReader(table))
	require.NoError(t, err)

	expected := []topo.Sample{
		{X: 1, Y: 1, Value: 1.1122831},
		{X: 2, Y: 2, Value: 7.0739156},
		{X: 30, Y: 26, Value: 8.7903548},
	}
	require.Len(t, rep.Samples, len(expected))
	for i, s := range rep.Samples {
		assert.Equal(t, expected[i].X, s.X)
		assert.Equal(t, expected[i].Y, s.Y)
		assert.InDelta(t, expected[i].Value, s.Value, 1e-12)
	}
	assert.Equal(t, 3, rep.Skipped)
}

func TestReadAMEErrors(t *testing.T) {
	t.Run("MissingHeader", func(t *testing.T) {
		_, err := ReadAME(strings.NewReader(ameLine("1", "1", "1000")))
		assert.Error(t, err)
	})
	t.Run("NoSamples", func(t *testing.T) {
		_, err := ReadAME(strings.NewReader(ameTable(ameLine("1", "1", "*"))))
		assert.Error(t, err)
	})
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"n,z,value",
		"0, 0, 8.8",
		"# comment",
		"0,1,7.0",
		"",
		"1,0,six",
		"1,0",
		"1,0,6.0",
	}, "\n")
	rep, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	expected := []topo.Sample{
		{X: 0, Y: 0, Value: 8.8},
		{X: 0, Y: 1, Value: 7.0},
		{X: 1, Y: 0, Value: 6.0},
	}
	if diff := cmp.Diff(expected, rep.Samples); diff != "" {
		t.Errorf("unexpected samples (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, rep.Skipped)
}

func TestReadCSVWithoutHeader(t *testing.T) {
	rep, err := ReadCSV(strings.NewReader("3,4,5.5\n-1,2,0.25\n"))
	require.NoError(t, err)
	assert.Equal(t, []topo.Sample{{X: 3, Y: 4, Value: 5.5}, {X: -1, Y: 2, Value: 0.25}}, rep.Samples)
	assert.Zero(t, rep.Skipped)

	_, err = ReadCSV(strings.NewReader("x,y,value\n"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "samples.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("1,2,3\n"), 0644))
	rep, err := ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []topo.Sample{{X: 1, Y: 2, Value: 3}}, rep.Samples)

	amePath := filepath.Join(dir, "mass.mas20.txt")
	require.NoError(t, os.WriteFile(amePath, []byte(ameTable(ameLine("8", "8", "7976.2072"))), 0644))
	rep, err = ReadFile(amePath)
	require.NoError(t, err)
	require.Len(t, rep.Samples, 1)
	assert.Equal(t, 8, rep.Samples[0].X)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
