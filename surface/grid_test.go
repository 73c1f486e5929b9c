package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planeGrid(t *testing.T, rows, cols int) *Grid {
	g, err := NewGrid(rows, cols, 10, 20, -4, 4)
	require.NoError(t, err)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(r, c, 3*g.X(c)-g.Y(r))
		}
	}
	return g
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(3, 5, 0, 8, 1, 3)
	require.NoError(t, err)
	cols, rows := g.Dims()
	assert.Equal(t, 5, cols)
	assert.Equal(t, 3, rows)
	assert.Equal(t, []float64{0, 2, 4, 6, 8}, []float64{g.X(0), g.X(1), g.X(2), g.X(3), g.X(4)})
	assert.Equal(t, []float64{1, 2, 3}, []float64{g.Y(0), g.Y(1), g.Y(2)})

	_, err = NewGrid(1, 5, 0, 1, 0, 1)
	assert.Error(t, err)
	_, err = NewGrid(2, 2, 1, 0, 0, 1)
	assert.Error(t, err)
}

func TestGridAccessors(t *testing.T) {
	g := planeGrid(t, 4, 6)
	assert.Equal(t, g.Get(2, 3), g.Z(3, 2))
	assert.Equal(t, g.Get(0, 0), g.Get(-3, -1))
	assert.Equal(t, g.Get(3, 5), g.Get(9, 9))
	assert.Equal(t, 3*10.0-4, g.Min())
	assert.Equal(t, 3*20.0+4, g.Max())

	c := g.Clone()
	c.Set(0, 0, 1000)
	assert.NotEqual(t, 1000.0, g.Get(0, 0))
}

func TestGridInterp(t *testing.T) {
	g := planeGrid(t, 5, 9)
	for _, p := range [][2]float64{{10, -4}, {20, 4}, {13.3, 0.7}, {17.25, -2.5}} {
		assert.InDelta(t, 3*p[0]-p[1], g.Interp(p[0], p[1]), 1e-9)
	}
	// Outside points clamp to the border.
	assert.InDelta(t, g.Interp(20, 4), g.Interp(25, 9), 1e-9)
}

func TestResample(t *testing.T) {
	g := planeGrid(t, 5, 9)
	up, err := Resample(g, 17, 33)
	require.NoError(t, err)
	assert.Equal(t, 17, up.Rows)
	assert.Equal(t, 33, up.Cols)
	assert.Equal(t, g.XMin, up.XMin)
	assert.Equal(t, g.YMax, up.YMax)
	for r := 0; r < up.Rows; r++ {
		for c := 0; c < up.Cols; c++ {
			assert.InDelta(t, 3*up.X(c)-up.Y(r), up.Get(r, c), 1e-9)
		}
	}

	_, err = Resample(g, 1, 1)
	assert.Error(t, err)
}
