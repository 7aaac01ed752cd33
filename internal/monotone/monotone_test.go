package monotone

import (
	"testing"

	"github.com/hollowcore/polytri/internal/geom"
	"github.com/hollowcore/polytri/internal/sweep"
	"github.com/stretchr/testify/assert"
)

func poly(idxStart int, points ...geom.Point) geom.SimplePolygon {
	p := make(geom.SimplePolygon, len(points))
	for i, pt := range points {
		p[i] = geom.PolyVert{Pos: pt, Idx: idxStart + i, NextEdge: i}
	}
	return p
}

func countChains(verts []sweep.VertAdj) int {
	seen := make(map[int]bool)
	chains := 0
	for i := range verts {
		if seen[i] {
			continue
		}
		j := i
		for !seen[j] {
			seen[j] = true
			j = verts[j].Right
		}
		chains++
	}
	return chains
}

func TestTriangulateUnitSquare(t *testing.T) {
	polys := geom.Polygons{poly(0, geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0}, geom.Point{X: 1, Y: 1}, geom.Point{X: 0, Y: 1})}
	verts := sweep.Decompose(polys, nil)
	triangles := Triangulate(verts, nil)

	assert.Len(t, triangles, len(verts)-2*countChains(verts))
	for _, tr := range triangles {
		a, b, c := vertByMesh(verts, tr.A), vertByMesh(verts, tr.B), vertByMesh(verts, tr.C)
		assert.GreaterOrEqual(t, geom.CCW(a.Pos, b.Pos, c.Pos), 0)
	}
}

func TestTriangulateNonConvexL(t *testing.T) {
	polys := geom.Polygons{poly(0,
		geom.Point{X: 0, Y: 0}, geom.Point{X: 2, Y: 0}, geom.Point{X: 2, Y: 1},
		geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 2}, geom.Point{X: 0, Y: 2},
	)}
	verts := sweep.Decompose(polys, nil)
	triangles := Triangulate(verts, nil)
	assert.Len(t, triangles, len(verts)-2*countChains(verts))
	assert.Len(t, triangles, 4)
}

func TestTriangulateTwoPeaksMerge(t *testing.T) {
	polys := geom.Polygons{poly(0,
		geom.Point{X: 0, Y: 0}, geom.Point{X: 4, Y: 0}, geom.Point{X: 4, Y: 3},
		geom.Point{X: 3, Y: 2}, geom.Point{X: 2, Y: 3}, geom.Point{X: 1, Y: 2}, geom.Point{X: 0, Y: 3},
	)}
	verts := sweep.Decompose(polys, nil)
	triangles := Triangulate(verts, nil)
	assert.Len(t, triangles, len(verts)-2*countChains(verts))
}

func vertByMesh(verts []sweep.VertAdj, meshIdx int) sweep.VertAdj {
	for _, v := range verts {
		if v.MeshIdx == meshIdx {
			return v
		}
	}
	panic("mesh index not found")
}
