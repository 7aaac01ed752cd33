package geom

import (
	"testing"

	"github.com/hollowcore/polytri/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestCCW(t *testing.T) {
	t.Run("counter-clockwise triple", func(t *testing.T) {
		assert.Equal(t, 1, CCW(Point{0, 0}, Point{1, 0}, Point{0, 1}))
	})

	t.Run("clockwise triple", func(t *testing.T) {
		assert.Equal(t, -1, CCW(Point{0, 0}, Point{0, 1}, Point{1, 0}))
	})

	t.Run("collinear triple", func(t *testing.T) {
		assert.Equal(t, 0, CCW(Point{0, 0}, Point{1, 0}, Point{2, 0}))
	})

	t.Run("antisymmetric under swap", func(t *testing.T) {
		p0, p1, p2 := Point{3, -1}, Point{5, 7}, Point{-2, 4}
		assert.Equal(t, -CCW(p0, p1, p2), CCW(p0, p2, p1))
	})

	t.Run("near-degenerate rectangle is not collinear at this magnitude", func(t *testing.T) {
		// The zero-band scales with N = Σ|x·y|, not with the aspect ratio of
		// the triple: here N is itself ~2e-6, so the band is far tighter than
		// the 1e-6 y-extent suggests, and the predicate correctly reports a
		// nonzero (CCW) orientation.
		assert.Equal(t, 1, CCW(Point{0, 0}, Point{2, 0}, Point{2, 0.000001}))
	})

	t.Run("collinear diagonal triple", func(t *testing.T) {
		assert.Equal(t, 0, CCW(Point{0, 0}, Point{1, 1}, Point{2, 2}))
	})
}

func TestSharedEdge(t *testing.T) {
	assert.True(t, SharedEdge([2]int{5, Invalid}, [2]int{5, 9}))
	assert.True(t, SharedEdge([2]int{NoIdx, 5}, [2]int{5, Invalid}))
	assert.False(t, SharedEdge([2]int{NoIdx, Invalid}, [2]int{1, 2}))
	assert.False(t, SharedEdge([2]int{3, 4}, [2]int{5, 6}))
}

func unitSquare() Polygons {
	return Polygons{{
		{Pos: Point{0, 0}, Idx: 0, NextEdge: 0},
		{Pos: Point{1, 0}, Idx: 1, NextEdge: 1},
		{Pos: Point{1, 1}, Idx: 2, NextEdge: 2},
		{Pos: Point{0, 1}, Idx: 3, NextEdge: 3},
	}}
}

func TestPolygonsToEdges(t *testing.T) {
	edges := PolygonsToEdges(unitSquare())
	assert.Len(t, edges, 4)
	assert.Equal(t, EdgeVerts{0, 1, 0}, edges[0])
	assert.Equal(t, EdgeVerts{3, 0, 3}, edges[3])
}

func TestTrianglesToEdges(t *testing.T) {
	edges := TrianglesToEdges([]Triangle{{0, 1, 2}})
	assert.Equal(t, []EdgeVerts{{0, 1, Interior}, {1, 2, Interior}, {2, 0, Interior}}, edges)
}

func TestAssembleRoundTrip(t *testing.T) {
	t.Run("single loop", func(t *testing.T) {
		edges := PolygonsToEdges(unitSquare())
		polys, err := Assemble(edges)
		assert.NoError(t, err)
		assert.Len(t, polys, 1)
		assert.Len(t, polys[0], 4)

		var ids []int
		for _, v := range polys[0] {
			ids = append(ids, v.Idx)
		}
		assert.Equal(t, []int{0, 1, 2, 3}, ids)
	})

	t.Run("two disjoint loops", func(t *testing.T) {
		tri1 := SimplePolygon{
			{Pos: Point{0, 0}, Idx: 0, NextEdge: 0},
			{Pos: Point{1, 0}, Idx: 1, NextEdge: 1},
			{Pos: Point{0, 1}, Idx: 2, NextEdge: 2},
		}
		tri2 := SimplePolygon{
			{Pos: Point{2, 2}, Idx: 3, NextEdge: 0},
			{Pos: Point{3, 2}, Idx: 4, NextEdge: 1},
			{Pos: Point{2, 3}, Idx: 5, NextEdge: 2},
		}
		edges := PolygonsToEdges(Polygons{tri1, tri2})
		polys, err := Assemble(edges)
		assert.NoError(t, err)
		assert.Len(t, polys, 2)
	})

	t.Run("duplicate source vertex fails", func(t *testing.T) {
		edges := []EdgeVerts{{0, 1, 0}, {0, 2, 1}}
		_, err := Assemble(edges)
		assert.ErrorIs(t, err, errs.ErrDuplicateVertices)
	})

	t.Run("dangling chain fails", func(t *testing.T) {
		edges := []EdgeVerts{{0, 1, 0}}
		_, err := Assemble(edges)
		assert.Error(t, err)
	})
}
