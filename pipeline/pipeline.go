// Package pipeline runs the stages that turn chart samples
// into a heightmap grid or a printable solid.
//
// Stages run one after another. Each stage may use several
// goroutines internally, but it finishes completely before
// the next one starts.
package pipeline

import (
	"log"
	"time"

	"github.com/arnonbruno/valley-stability/slab"
	"github.com/arnonbruno/valley-stability/surface"
	"github.com/arnonbruno/valley-stability/topo"
	"github.com/pkg/errors"
)

// Stage names used in StageError.
const (
	StageHeights     = "heights"
	StageReconstruct = "reconstruct"
	StageMesh        = "mesh"
	StageValidate    = "validate"
)

// A StageError is a failure of one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (s *StageError) Error() string {
	return "stage " + s.Stage + ": " + s.Err.Error()
}

// Cause returns the underlying error, for errors.Cause.
func (s *StageError) Cause() error {
	return s.Err
}

func (s *StageError) Unwrap() error {
	return s.Err
}

// FailedStage returns the name of the stage that produced
// err, or "" if err did not come from a stage.
func FailedStage(err error) string {
	for err != nil {
		if s, ok := err.(*StageError); ok {
			return s.Stage
		}
		c, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = c.Cause()
	}
	return ""
}

// Settings configures a full pipeline run.
type Settings struct {
	Params    topo.Params
	MaxHeight float64
	Surface   surface.Options
	Slab      slab.Options
}

// WebSettings returns the reference settings for the
// interactive heightmap.
func WebSettings() Settings {
	return Settings{
		Params:    topo.DefaultParams(),
		MaxHeight: topo.DefaultMaxPrintHeight,
		Surface:   surface.WebOptions(),
		Slab:      slab.DefaultOptions(),
	}
}

// PrintSettings returns the reference settings for the
// printable solid.
func PrintSettings() Settings {
	s := WebSettings()
	s.Surface = surface.PrintOptions()
	return s
}

// Heights scores every sample and returns the normalized
// heights as scattered points.
func Heights(samples []topo.Sample, s Settings) ([]surface.Point, error) {
	if len(samples) == 0 {
		return nil, &StageError{Stage: StageHeights, Err: errors.New("no samples")}
	}
	if !(s.MaxHeight > 0) {
		return nil, &StageError{Stage: StageHeights, Err: errors.New("max height must be positive")}
	}

	log.Printf("Scoring %d samples ...", len(samples))
	start := time.Now()
	scored := topo.Score(samples, s.Params, s.Surface.NumWorkers)
	heights := topo.Normalize(scored, s.MaxHeight)

	points := make([]surface.Point, len(scored))
	for i, sc := range scored {
		points[i] = surface.Point{X: sc.X, Y: sc.Y, Value: heights[i]}
	}
	log.Printf("Scored %d samples in %v", len(points), time.Since(start))
	return points, nil
}

// WebGrid derives heights and reconstructs a smoothed grid.
func WebGrid(samples []topo.Sample, s Settings) (*surface.Grid, error) {
	points, err := Heights(samples, s)
	if err != nil {
		return nil, err
	}
	return Reconstruct(points, s.Surface)
}

// Reconstruct resamples scattered heights onto a grid.
func Reconstruct(points []surface.Point, opts surface.Options) (*surface.Grid, error) {
	log.Printf("Reconstructing %dx%d grid (sigma=%v) ...", opts.Resolution, opts.Resolution,
		opts.Sigma)
	start := time.Now()
	g, err := surface.Reconstruct(points, opts)
	if err != nil {
		return nil, &StageError{Stage: StageReconstruct, Err: err}
	}
	log.Printf("Reconstructed grid in %v (heights %.3f to %.3f)", time.Since(start), g.Min(),
		g.Max())
	return g, nil
}

// PrintSolid derives heights, reconstructs a grid and
// builds a validated solid from it.
func PrintSolid(samples []topo.Sample, s Settings) (*slab.Mesh, error) {
	points, err := Heights(samples, s)
	if err != nil {
		return nil, err
	}
	g, err := Reconstruct(points, s.Surface)
	if err != nil {
		return nil, err
	}
	return Solid(g, s.Slab)
}

// Solid builds a solid from a grid and checks that it is
// watertight and encloses the surface before returning it.
func Solid(g *surface.Grid, opts slab.Options) (*slab.Mesh, error) {
	log.Println("Creating mesh...")
	start := time.Now()
	m, err := slab.Build(g, opts)
	if err != nil {
		return nil, &StageError{Stage: StageMesh, Err: err}
	}
	log.Printf("Created mesh with %d vertices and %d faces in %v", len(m.Vertices), len(m.Faces),
		time.Since(start))

	if err := m.Validate(); err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}
	if err := slab.CheckContainment(m, g, opts); err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}
	log.Println("Mesh check:", slab.Check(m))
	return m, nil
}
