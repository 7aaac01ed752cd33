// Package geom holds the plain data model shared by every stage of the
// triangulation core: points, polygon loops, halfedges, triangles, the
// tolerant orientation predicate, and the polygon assembler. Nothing in this
// package depends on the sweep, monotone, backup, or validate stages, so any
// of them can be tested against it in isolation.
package geom

import (
	"github.com/hollowcore/polytri/internal/errs"
	"github.com/pkg/errors"
)

// Sentinel values for PolyVert.NextEdge. All real edge tags are
// non-negative, so these three stay distinct from any real tag and from each
// other.
const (
	NoIdx    = -1 // no associated boundary edge
	Invalid  = -2 // vacant validator scratch slot
	Interior = -3 // triangle-interior halfedge, not part of the input boundary
)

// Point is a planar position.
type Point struct {
	X, Y float64
}

// PolyVert is one vertex of a simple polygon loop: its position, the
// caller-supplied identity that survives triangulation, and the edge tag of
// the boundary edge leaving this vertex.
type PolyVert struct {
	Pos      Point
	Idx      int
	NextEdge int
}

// SimplePolygon is a closed loop of vertices, interpreted cyclically. Outer
// boundaries wind counter-clockwise; holes wind clockwise.
type SimplePolygon []PolyVert

// Polygons is one outer boundary with zero or more holes, or several
// disjoint boundaries, in no particular order.
type Polygons []SimplePolygon

// EdgeVerts is a directed edge between two caller vertex identities, carrying
// the edge's metadata tag.
type EdgeVerts struct {
	First, Second int
	Edge          int
}

// Triangle is an ordered triple of vertex identities, wound the same way as
// the polygon it came from.
type Triangle struct {
	A, B, C int
}

const tolerance = 1e5

// CCW returns the tolerant sign of the signed area of triangle (p0, p1, p2):
// +1 if the triple winds counter-clockwise, -1 if clockwise, 0 if the triple
// is collinear within a scale-aware tolerance. The zero case must be handled
// explicitly by every caller; it is not an edge case to be special-cased
// away.
func CCW(p0, p1, p2 Point) int {
	v1 := Point{p1.X - p0.X, p1.Y - p0.Y}
	v2 := Point{p2.X - p0.X, p2.Y - p0.Y}
	result := v1.X*v2.Y - v1.Y*v2.X

	norm := abs(p0.X)*abs(p0.Y) + abs(p1.X)*abs(p1.Y) + abs(p2.X)*abs(p2.Y)
	if abs(result)*tolerance <= norm {
		return 0
	}
	if result > 0 {
		return 1
	}
	return -1
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PolygonsToEdges converts each polygon loop into its boundary halfedges, one
// per consecutive vertex pair, carrying the NextEdge tag forward from the
// originating vertex.
func PolygonsToEdges(polys Polygons) []EdgeVerts {
	var halfedges []EdgeVerts
	for _, poly := range polys {
		for i := 1; i < len(poly); i++ {
			halfedges = append(halfedges, EdgeVerts{poly[i-1].Idx, poly[i].Idx, poly[i-1].NextEdge})
		}
		if len(poly) > 0 {
			halfedges = append(halfedges, EdgeVerts{poly[len(poly)-1].Idx, poly[0].Idx, poly[len(poly)-1].NextEdge})
		}
	}
	return halfedges
}

// TrianglesToEdges expands each triangle into its three halfedges, tagged
// Interior since they are never part of the input boundary.
func TrianglesToEdges(triangles []Triangle) []EdgeVerts {
	halfedges := make([]EdgeVerts, 0, len(triangles)*3)
	for _, t := range triangles {
		halfedges = append(halfedges,
			EdgeVerts{t.A, t.B, Interior},
			EdgeVerts{t.B, t.C, Interior},
			EdgeVerts{t.C, t.A, Interior},
		)
	}
	return halfedges
}

// SharedEdge reports whether two vertices' non-interior edge tags overlap:
// true if either of e0's real tags also appears in e1. Used both by the
// backup triangulator (to steer away from a boundary edge it's already
// used) and by the manifold validator (to catch a triangulation that
// bridges two vertices which already co-lie on the same polygon edge).
func SharedEdge(e0, e1 [2]int) bool {
	return (e0[0] >= 0 && (e0[0] == e1[0] || e0[0] == e1[1])) ||
		(e0[1] >= 0 && (e0[1] == e1[0] || e0[1] == e1[1]))
}

// Assemble reconstructs closed polygon loops from an unordered set of
// directed edges. Every vertex must appear as First in at most one edge;
// otherwise Assemble fails with ErrDuplicateVertices. A chain that cannot
// find its continuation fails with ErrNonmanifoldEdge.
func Assemble(halfedges []EdgeVerts) (Polygons, error) {
	vertEdge := make(map[int]int, len(halfedges))
	for i, e := range halfedges {
		if _, dup := vertEdge[e.First]; dup {
			return nil, errors.Wrapf(errs.ErrDuplicateVertices, "vertex %d", e.First)
		}
		vertEdge[e.First] = i
	}

	var polys Polygons
	startIdx := 0
	thisIdx := 0
	for {
		if thisIdx == startIdx {
			if len(vertEdge) == 0 {
				break
			}
			// Start from the smallest remaining vertex, matching the
			// reference's std::map::begin() iteration order.
			minVert := 0
			first := true
			for v := range vertEdge {
				if first || v < minVert {
					minVert = v
					first = false
				}
			}
			startIdx = vertEdge[minVert]
			thisIdx = startIdx
			polys = append(polys, SimplePolygon{})
		}
		this := halfedges[thisIdx]
		polys[len(polys)-1] = append(polys[len(polys)-1], PolyVert{
			Pos:      Point{},
			Idx:      this.First,
			NextEdge: this.Edge,
		})
		nextIdx, ok := vertEdge[this.Second]
		if !ok {
			return nil, errors.Wrapf(errs.ErrNonmanifoldEdge, "no continuation from vertex %d", this.Second)
		}
		thisIdx = nextIdx
		delete(vertEdge, this.Second)
	}
	return polys, nil
}
