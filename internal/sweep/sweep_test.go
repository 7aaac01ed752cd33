package sweep

import (
	"testing"

	"github.com/hollowcore/polytri/internal/geom"
	"github.com/stretchr/testify/assert"
)

func poly(idxStart int, points ...geom.Point) geom.SimplePolygon {
	p := make(geom.SimplePolygon, len(points))
	for i, pt := range points {
		p[i] = geom.PolyVert{Pos: pt, Idx: idxStart + i, NextEdge: i}
	}
	return p
}

func TestDecomposeUnitSquare(t *testing.T) {
	verts := Decompose(geom.Polygons{poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 1, Y: 1}, geom.Point{X: 0, Y: 1})}, nil)
	for _, v := range verts {
		assert.True(t, v.Processed(), "every sweep vertex should have a matched diagonal by the time the sweep finishes")
	}
}

func TestDecomposeSquareWithHole(t *testing.T) {
	outer := poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 3, Y: 0}, geom.Point{X: 3, Y: 3}, geom.Point{X: 0, Y: 3})
	hole := poly(4, geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 2}, geom.Point{X: 2, Y: 2}, geom.Point{X: 2, Y: 1})
	verts := Decompose(geom.Polygons{outer, hole}, nil)
	assert.GreaterOrEqual(t, len(verts), 8)
}

// The two-peaks polygon from the merge-requiring end-to-end scenario: sweeping
// downward from (4,3), vertex (3,2) or (1,2) must be classified as a merge
// and resolved through duplicate/splitVerts rather than left dangling.
func TestDecomposeTwoPeaksRequiresMerge(t *testing.T) {
	p := poly(0,
		geom.Point{X: 0, Y: 0}, geom.Point{X: 4, Y: 0}, geom.Point{X: 4, Y: 3},
		geom.Point{X: 3, Y: 2}, geom.Point{X: 2, Y: 3}, geom.Point{X: 1, Y: 2}, geom.Point{X: 0, Y: 3},
	)
	verts := Decompose(geom.Polygons{p}, nil)

	sawMerge := false
	for _, v := range verts {
		if v.Merge {
			sawMerge = true
		}
	}
	assert.True(t, sawMerge, "two-peaks polygon must trigger at least one merge-vertex duplication")
	for _, v := range verts {
		assert.True(t, v.Processed())
	}
}

func TestDecomposeTwoDisjointTriangles(t *testing.T) {
	tri1 := poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 0, Y: 1})
	tri2 := poly(3, geom.Point{X: 2, Y: 2}, geom.Point{X: 3, Y: 2}, geom.Point{X: 2, Y: 3})
	verts := Decompose(geom.Polygons{tri1, tri2}, nil)
	assert.Len(t, verts, 6)
}
