package backup

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

func TestTriangulateUnitSquare(t *testing.T) {
	polys := geom.Polygons{poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 1, Y: 1}, geom.Point{X: 0, Y: 1})}
	triangles := Triangulate(polys)
	assert.Len(t, triangles, 2)
}

func TestTriangulateSkipsDegenerateLoop(t *testing.T) {
	polys := geom.Polygons{poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})}
	triangles := Triangulate(polys)
	assert.Empty(t, triangles)
}

func TestTriangulateSquareWithHole(t *testing.T) {
	outer := poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 3, Y: 0}, geom.Point{X: 3, Y: 3}, geom.Point{X: 0, Y: 3})
	hole := poly(4, geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 2}, geom.Point{X: 2, Y: 2}, geom.Point{X: 2, Y: 1})
	triangles := Triangulate(geom.Polygons{outer, hole})
	// Each loop is fanned independently; the backup triangulator does not
	// stitch hole boundaries to outer boundaries, so it only produces
	// (n-2) triangles per loop.
	assert.Len(t, triangles, 2+2)
}

func TestNextPrevWrap(t *testing.T) {
	assert.Equal(t, 0, next(2, 3))
	assert.Equal(t, 2, prev(0, 3))
}
