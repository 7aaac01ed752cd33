// Package polytri converts a set of simple planar polygons, which may have
// holes, may be disjoint, and may touch at isolated vertices, into a set of
// triangles built only from the original points. It is the triangulation
// core of a solid-modeling library: the surrounding library's 3D mesh
// builder, boolean operators, and primitive constructors are out of scope
// here and consume this package's output.
package polytri

import (
	"io"

	"github.com/hollowcore/polytri/internal/backup"
	"github.com/hollowcore/polytri/internal/dbg"
	"github.com/hollowcore/polytri/internal/errs"
	"github.com/hollowcore/polytri/internal/geom"
	"github.com/hollowcore/polytri/internal/monotone"
	"github.com/hollowcore/polytri/internal/sweep"
	"github.com/hollowcore/polytri/internal/validate"
)

// Re-exported data model. Callers build a Polygons value, pass it to
// Triangulate, and get back []Triangle referencing the same vertex
// identities they put in.
type (
	Point         = geom.Point
	PolyVert      = geom.PolyVert
	SimplePolygon = geom.SimplePolygon
	Polygons      = geom.Polygons
	EdgeVerts     = geom.EdgeVerts
	Triangle      = geom.Triangle
)

// Sentinel values for PolyVert.NextEdge.
const (
	NoIdx    = geom.NoIdx
	Invalid  = geom.Invalid
	Interior = geom.Interior
)

// Option configures a single Triangulate call. The zero value of every
// option's target field is a safe, silent default, so Triangulate(polys) on
// its own is always valid.
type Option func(*config)

type config struct {
	sink           *dbg.Sink
	backupDisabled bool
}

// WithSink attaches a diagnostic sink to this call. Pass dbg.NewSink(w, verbose, warn).
func WithSink(sink *dbg.Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithBackupDisabled turns off the automatic fallback to the backup
// triangulator on a manifold-check failure, so a test can observe whether
// the primary pipeline alone succeeds on a given input.
func WithBackupDisabled() Option {
	return func(c *config) { c.backupDisabled = true }
}

// Triangulate runs the primary sweep/monotone pipeline and validates its
// output; if validation fails, it falls back once to the backup
// triangulator and validates again. A logic error from the primary pipeline
// (an internal bug, not a validation failure) is never retried.
func Triangulate(polys Polygons, opts ...Option) (triangles []Triangle, err error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	defer func() {
		if r := recover(); r != nil {
			triangles = nil
			err = errs.Recover(r)
		}
	}()

	triangles = primaryTriangulate(polys, cfg.sink)
	if verr := validateTriangulation(triangles, polys); verr == nil {
		return triangles, nil
	} else if cfg.backupDisabled {
		return nil, verr
	} else {
		cfg.sink.Warnf("primary triangulation failed validation, switching to backup: %v", verr)
	}

	triangles = backup.Triangulate(polys)
	if verr := validateTriangulation(triangles, polys); verr != nil {
		cfg.sink.Warnf("backup triangulation also failed validation: %v", verr)
		return nil, verr
	}
	return triangles, nil
}

func primaryTriangulate(polys Polygons, sink *dbg.Sink) []Triangle {
	verts := sweep.Decompose(polys, sink)
	return monotone.Triangulate(verts, sink)
}

func validateTriangulation(triangles []Triangle, polys Polygons) error {
	return validate.TrianglesAgainstPolygons(triangles, polys)
}

// CCW returns the tolerant sign of the signed area of (p0, p1, p2): +1
// counter-clockwise, -1 clockwise, 0 if the triple is collinear within a
// scale-aware tolerance.
func CCW(p0, p1, p2 Point) int { return geom.CCW(p0, p1, p2) }

// Assemble reconstructs closed polygon loops from an unordered set of
// directed edges, for debugging and for stitching edges back into polygons.
func Assemble(halfedges []EdgeVerts) (Polygons, error) { return geom.Assemble(halfedges) }

// PolygonsToEdges converts each polygon loop into its boundary halfedges.
func PolygonsToEdges(polys Polygons) []EdgeVerts { return geom.PolygonsToEdges(polys) }

// TrianglesToEdges expands each triangle into its three Interior-tagged
// halfedges.
func TrianglesToEdges(triangles []Triangle) []EdgeVerts { return geom.TrianglesToEdges(triangles) }

// CheckManifoldEdges checks a closed halfedge multiset directly: every
// undirected edge must appear exactly once in each direction.
func CheckManifoldEdges(halfedges []EdgeVerts) error {
	return validate.Manifold(halfedges)
}

// CheckManifold checks that triangles forms a 2-manifold with respect to the
// boundary described by polys.
func CheckManifold(triangles []Triangle, polys Polygons) error {
	return validate.TrianglesAgainstPolygons(triangles, polys)
}

// CheckFolded checks that no two adjacent triangles in triangles bend
// across their shared edge in opposite senses relative to polys.
func CheckFolded(triangles []Triangle, polys Polygons) error {
	return validate.Folded(triangles, polys)
}

// NewSink constructs a diagnostic sink. w receives trace/warning lines when
// verbose/warn are set; a nil *dbg.Sink (the zero value of Option's target)
// is always safe to omit.
func NewSink(w io.Writer, verbose, warn bool) *dbg.Sink { return dbg.NewSink(w, verbose, warn) }
