package topo

// A Centerline maps each x coordinate to the y coordinate
// of the sample with the largest value at that x.
//
// A Centerline is read-only once built and may be shared
// between goroutines.
type Centerline struct {
	centers map[int]int
}

// NewCenterline computes the centerline of the samples.
// When several samples tie for the largest value, the one
// that appears first wins.
func NewCenterline(samples []Sample) *Centerline {
	best := map[int]float64{}
	centers := map[int]int{}
	for _, s := range samples {
		if v, ok := best[s.X]; !ok || s.Value > v {
			best[s.X] = s.Value
			centers[s.X] = s.Y
		}
	}
	return &Centerline{centers: centers}
}

// Center returns y*(x), or fallback if x was never seen.
func (c *Centerline) Center(x, fallback int) int {
	if y, ok := c.centers[x]; ok {
		return y
	}
	return fallback
}

// Len returns the number of distinct x coordinates.
func (c *Centerline) Len() int {
	return len(c.centers)
}

// Map returns a copy of the x -> y* mapping.
func (c *Centerline) Map() map[int]int {
	res := make(map[int]int, len(c.centers))
	for x, y := range c.centers {
		res[x] = y
	}
	return res
}
