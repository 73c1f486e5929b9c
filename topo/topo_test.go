package topo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSamples() []Sample {
	return []Sample{
		{X: 0, Y: 0, Value: 8.8},
		{X: 0, Y: 1, Value: 7.0},
		{X: 1, Y: 0, Value: 6.0},
	}
}

func TestCenterline(t *testing.T) {
	t.Run("picks the largest value per x", func(t *testing.T) {
		c := NewCenterline(threeSamples())
		if diff := cmp.Diff(map[int]int{0: 0, 1: 0}, c.Map()); diff != "" {
			t.Errorf("centerline mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 2, c.Len())
	})

	t.Run("first sample wins ties", func(t *testing.T) {
		c := NewCenterline([]Sample{
			{X: 4, Y: 7, Value: 3},
			{X: 4, Y: 2, Value: 3},
			{X: 4, Y: 9, Value: 1},
		})
		assert.Equal(t, 7, c.Center(4, -1))
	})

	t.Run("unknown x falls back", func(t *testing.T) {
		c := NewCenterline(threeSamples())
		assert.Equal(t, 13, c.Center(99, 13))
	})
}

func TestHeight(t *testing.T) {
	p := DefaultParams()
	samples := threeSamples()
	c := NewCenterline(samples)

	assert.InDelta(t, 0.0, p.Height(samples[0], c), 1e-12)
	assert.InDelta(t, 5.24, p.Height(samples[1], c), 1e-12)
	assert.InDelta(t, 7.84, p.Height(samples[2], c), 1e-12)

	t.Run("missing centerline entry uses own y", func(t *testing.T) {
		s := Sample{X: 50, Y: 20, Value: 7.8}
		assert.InDelta(t, 1.0, p.Height(s, c), 1e-12)
	})

	t.Run("values above the reference stay non-negative", func(t *testing.T) {
		s := Sample{X: 0, Y: 0, Value: 9.5}
		h := p.Height(s, c)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.InDelta(t, 0.49, h, 1e-12)
	})
}

func TestScore(t *testing.T) {
	samples := threeSamples()
	for i := 0; i < 40; i++ {
		samples = append(samples, Sample{X: i % 7, Y: i, Value: float64(i%9) + 0.25})
	}
	for _, workers := range []int{0, 1, 3} {
		scored := Score(samples, DefaultParams(), workers)
		require.Len(t, scored, len(samples))
		for i, s := range scored {
			assert.Equal(t, samples[i], s.Sample)
			assert.GreaterOrEqual(t, s.Height, 0.0)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Run("reference example", func(t *testing.T) {
		scored := Score(threeSamples(), DefaultParams(), 1)
		norm := Normalize(scored, DefaultMaxPrintHeight)
		require.Len(t, norm, 3)
		assert.Equal(t, 0.0, norm[0])
		assert.InDelta(t, 40.1, norm[1], 0.05)
		assert.Equal(t, DefaultMaxPrintHeight, norm[2])
	})

	t.Run("bounded by max height", func(t *testing.T) {
		var scored []Scored
		for i := 0; i < 25; i++ {
			scored = append(scored, Scored{Height: math.Mod(float64(i)*1.37, 5)})
		}
		for _, h := range Normalize(scored, 60) {
			assert.GreaterOrEqual(t, h, 0.0)
			assert.LessOrEqual(t, h, 60.0)
		}
	})

	t.Run("all-zero heights give a flat floor", func(t *testing.T) {
		norm := Normalize([]Scored{{}, {}, {}}, 60)
		assert.Equal(t, []float64{0, 0, 0}, norm)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(nil, 60))
	})
}
