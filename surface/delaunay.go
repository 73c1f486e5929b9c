package surface

import (
	"sort"

	"github.com/pkg/errors"
)

// MaxCoordinateSpan bounds the extent of sample
// coordinates along either axis so that the exact
// in-circle test cannot overflow an int64.
const MaxCoordinateSpan = 1 << 14

// A Point is a scattered sample on the integer lattice.
type Point struct {
	X     int
	Y     int
	Value float64
}

// A Triangulation is a Delaunay triangulation of a set of
// lattice points.
//
// Triangles index into Points and are wound
// counter-clockwise. Duplicate coordinates are collapsed
// to the first point seen.
type Triangulation struct {
	Points    []Point
	Triangles [][3]int
}

// Triangulate computes a Delaunay triangulation.
//
// The orientation and in-circle predicates are evaluated
// exactly on the integer coordinates, so lattice inputs
// with many co-circular points still produce a valid
// triangulation. If every point is collinear, the result
// has no triangles.
func Triangulate(points []Point) (*Triangulation, error) {
	pts := uniquePoints(points)
	if err := checkSpan(pts); err != nil {
		return nil, err
	}
	res := &Triangulation{Points: pts}
	if len(pts) < 3 {
		return res, nil
	}
	tris := sweepTriangles(pts)
	if len(tris) == 0 {
		return res, nil
	}
	res.Triangles = legalize(pts, tris)
	return res, nil
}

func uniquePoints(points []Point) []Point {
	sorted := append([]Point{}, points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	res := sorted[:0]
	for i, p := range sorted {
		if i > 0 && p.X == sorted[i-1].X && p.Y == sorted[i-1].Y {
			continue
		}
		res = append(res, p)
	}
	return res
}

func checkSpan(pts []Point) error {
	if len(pts) == 0 {
		return nil
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if maxX-minX > MaxCoordinateSpan || maxY-minY > MaxCoordinateSpan {
		return errors.New("triangulate: coordinate span too large")
	}
	return nil
}

// sweepTriangles triangulates lexicographically sorted
// points by growing a convex hull one point at a time.
func sweepTriangles(pts []Point) [][3]int {
	k := 2
	for k < len(pts) && orient(pts[0], pts[1], pts[k]) == 0 {
		k++
	}
	if k == len(pts) {
		return nil
	}

	// Fan from the first point off the initial line.
	var tris [][3]int
	for i := 0; i+1 < k; i++ {
		tris = append(tris, counterClockwise(pts, i, i+1, k))
	}
	hull := make([]int, 0, k+1)
	if orient(pts[0], pts[k-1], pts[k]) > 0 {
		for i := 0; i <= k; i++ {
			hull = append(hull, i)
		}
	} else {
		hull = append(hull, 0, k)
		for i := k - 1; i > 0; i-- {
			hull = append(hull, i)
		}
	}

	for p := k + 1; p < len(pts); p++ {
		hull, tris = addOutsidePoint(pts, hull, tris, p)
	}
	return tris
}

// addOutsidePoint connects p to every hull edge that sees
// it and returns the updated counter-clockwise hull.
func addOutsidePoint(pts []Point, hull []int, tris [][3]int, p int) ([]int, [][3]int) {
	n := len(hull)
	visible := make([]bool, n)
	var anyVisible bool
	for i := range hull {
		a, b := hull[i], hull[(i+1)%n]
		if orient(pts[a], pts[b], pts[p]) < 0 {
			visible[i] = true
			anyVisible = true
		}
	}
	if !anyVisible {
		return hull, tris
	}

	start := 0
	for i := range visible {
		if visible[i] && !visible[(i+n-1)%n] {
			start = i
			break
		}
	}
	end := start
	for visible[(end+1)%n] && (end+1)%n != start {
		end = (end + 1) % n
	}

	for i := start; ; i = (i + 1) % n {
		a, b := hull[i], hull[(i+1)%n]
		tris = append(tris, [3]int{b, a, p})
		if i == end {
			break
		}
	}

	newHull := make([]int, 0, n+1)
	for i := (end + 1) % n; ; i = (i + 1) % n {
		newHull = append(newHull, hull[i])
		if i == start {
			break
		}
	}
	newHull = append(newHull, p)
	return newHull, tris
}

// legalize flips edges until every edge satisfies the
// empty circumcircle property.
func legalize(pts []Point, tris [][3]int) [][3]int {
	adj := triangleNeighbors(tris)
	for changed := true; changed; {
		changed = false
		for t := range tris {
			for i := 0; i < 3; i++ {
				if flipIfIllegal(pts, tris, adj, t, i) {
					changed = true
				}
			}
		}
	}
	return tris
}

// triangleNeighbors finds, for each triangle t and edge
// i = (t[i], t[i+1]), the triangle across that edge, or
// -1 on the hull.
func triangleNeighbors(tris [][3]int) [][3]int {
	type edge struct{ a, b int }
	owners := make(map[edge]int, len(tris)*3)
	for t, tri := range tris {
		for i := 0; i < 3; i++ {
			owners[edge{tri[i], tri[(i+1)%3]}] = t
		}
	}
	adj := make([][3]int, len(tris))
	for t, tri := range tris {
		for i := 0; i < 3; i++ {
			if u, ok := owners[edge{tri[(i+1)%3], tri[i]}]; ok {
				adj[t][i] = u
			} else {
				adj[t][i] = -1
			}
		}
	}
	return adj
}

func flipIfIllegal(pts []Point, tris, adj [][3]int, t, i int) bool {
	u := adj[t][i]
	if u < 0 {
		return false
	}
	a, b, c := tris[t][i], tris[t][(i+1)%3], tris[t][(i+2)%3]
	j := edgeSlot(tris[u], b, a)
	d := tris[u][(j+2)%3]
	if inCircle(pts[a], pts[b], pts[c], pts[d]) <= 0 {
		return false
	}

	tBC, tCA := adj[t][(i+1)%3], adj[t][(i+2)%3]
	uAD, uDB := adj[u][(j+1)%3], adj[u][(j+2)%3]

	tris[t] = [3]int{a, d, c}
	adj[t] = [3]int{uAD, u, tCA}
	tris[u] = [3]int{d, b, c}
	adj[u] = [3]int{uDB, tBC, t}

	relink(adj, uAD, u, t)
	relink(adj, tBC, t, u)
	return true
}

func edgeSlot(tri [3]int, a, b int) int {
	for i := 0; i < 3; i++ {
		if tri[i] == a && tri[(i+1)%3] == b {
			return i
		}
	}
	panic("triangulation: missing twin edge")
}

func relink(adj [][3]int, t, from, to int) {
	if t < 0 {
		return
	}
	for i, n := range adj[t] {
		if n == from {
			adj[t][i] = to
		}
	}
}

func counterClockwise(pts []Point, a, b, c int) [3]int {
	if orient(pts[a], pts[b], pts[c]) < 0 {
		return [3]int{b, a, c}
	}
	return [3]int{a, b, c}
}

// orient is positive if a, b, c turn counter-clockwise,
// negative if clockwise, and zero if collinear.
func orient(a, b, c Point) int64 {
	return int64(b.X-a.X)*int64(c.Y-a.Y) - int64(b.Y-a.Y)*int64(c.X-a.X)
}

// inCircle is positive if d lies strictly inside the
// circumcircle of the counter-clockwise triangle a, b, c.
func inCircle(a, b, c, d Point) int64 {
	adx, ady := int64(a.X-d.X), int64(a.Y-d.Y)
	bdx, bdy := int64(b.X-d.X), int64(b.Y-d.Y)
	cdx, cdy := int64(c.X-d.X), int64(c.Y-d.Y)
	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy
	return ad*(bdx*cdy-cdx*bdy) + bd*(cdx*ady-adx*cdy) + cd*(adx*bdy-bdx*ady)
}

// locate finds the first of the candidate triangles that
// contains (x, y), along with the barycentric weights of
// its vertices.
func (t *Triangulation) locate(candidates []int, x, y float64) (int, [3]float64, bool) {
	for _, i := range candidates {
		if w, ok := t.weights(i, x, y); ok {
			return i, w, true
		}
	}
	return -1, [3]float64{}, false
}

func (t *Triangulation) blend(tri int, w [3]float64) float64 {
	v := t.Triangles[tri]
	return w[0]*t.Points[v[0]].Value + w[1]*t.Points[v[1]].Value + w[2]*t.Points[v[2]].Value
}

const insideEpsilon = 1e-9

func (t *Triangulation) weights(tri int, x, y float64) ([3]float64, bool) {
	v := t.Triangles[tri]
	p1, p2, p3 := t.Points[v[0]], t.Points[v[1]], t.Points[v[2]]
	x1, y1 := float64(p1.X), float64(p1.Y)
	x2, y2 := float64(p2.X), float64(p2.Y)
	x3, y3 := float64(p3.X), float64(p3.Y)

	denom := (y2-y3)*(x1-x3) + (x3-x2)*(y1-y3)
	if denom == 0 {
		return [3]float64{}, false
	}
	a := ((y2-y3)*(x-x3) + (x3-x2)*(y-y3)) / denom
	b := ((y3-y1)*(x-x3) + (x1-x3)*(y-y3)) / denom
	c := 1 - a - b
	if a < -insideEpsilon || b < -insideEpsilon || c < -insideEpsilon {
		return [3]float64{}, false
	}
	return [3]float64{a, b, c}, true
}
