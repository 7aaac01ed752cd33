// Package monotone implements the stack-based monotone triangulator (C4): a
// reflex-chain triangulator is spawned per monotone chain, and vertices are
// dispatched to the first triangulator willing to accept them as the sweep
// walks the vertex buffer in sweep order. Ported from the reference
// Triangulator/TriangulateMonotones in polygon.cpp.
package monotone

import (
	"sort"

	"github.com/hollowcore/polytri/internal/dbg"
	"github.com/hollowcore/polytri/internal/errs"
	"github.com/hollowcore/polytri/internal/geom"
	"github.com/hollowcore/polytri/internal/sweep"
)

// triangulator tracks one monotone chain's reflex-chain stack as it walks
// down the sweep.
type triangulator struct {
	stack         []int
	otherSide     int
	onRight       bool
	triangleCount int
}

func newTriangulator(seedIdx int) *triangulator {
	return &triangulator{stack: []int{seedIdx}, otherSide: seedIdx}
}

func (t *triangulator) top() int { return t.stack[len(t.stack)-1] }

func (t *triangulator) pop() int {
	v := t.top()
	t.stack = t.stack[:len(t.stack)-1]
	return v
}

// attached reports whether vIdx continues this triangulator's chain: +1 if
// it's the next vertex on the same chain as the stack top, -1 if it closes
// in from the opposite chain (adjacent to the "other side" vertex), 0 if
// this triangulator has nothing to do with vIdx.
//
// Before the chain has committed to a side (stack size < 2), onRight hasn't
// been determined yet, so acceptance is just "is vIdx actually adjacent to
// the seed".
func (t *triangulator) attached(vIdx int, verts []sweep.VertAdj) int {
	if len(t.stack) < 2 {
		top := verts[t.top()]
		if vIdx == top.Right || vIdx == top.Left {
			return 1
		}
		return 0
	}
	other := verts[t.otherSide]
	top := verts[t.top()]
	if t.onRight {
		if other.Left == vIdx {
			return -1
		}
		if top.Right == vIdx {
			return 1
		}
		return 0
	}
	if other.Right == vIdx {
		return -1
	}
	if top.Left == vIdx {
		return 1
	}
	return 0
}

func (t *triangulator) addTriangle(v0, v1, v2 int) geom.Triangle {
	t.triangleCount++
	if t.onRight {
		return geom.Triangle{A: v0, B: v1, C: v2}
	}
	return geom.Triangle{A: v0, B: v2, C: v1}
}

// processVert attempts to extend this chain with vIdx. The second return
// value reports whether this triangulator claimed the vertex.
func (t *triangulator) processVert(viIdx int, verts []sweep.VertAdj) ([]geom.Triangle, bool) {
	attached := t.attached(viIdx, verts)
	if attached == 0 {
		return nil, false
	}

	vi := verts[viIdx]
	vTopIdx := t.top()
	vTop := verts[vTopIdx]

	if len(t.stack) < 2 {
		t.stack = append(t.stack, viIdx)
		t.onRight = vi.Left == vTopIdx
		return nil, true
	}

	t.pop()
	vjIdx := t.top()
	vj := verts[vjIdx]

	var triangles []geom.Triangle
	if attached == 1 {
		// Same chain: pop and emit triangles while the popped vertex is
		// strictly reflex with respect to (vi, stack top, popped).
		expected := 1
		if t.onRight {
			expected = -1
		}
		for geom.CCW(vi.Pos, vj.Pos, vTop.Pos) != expected {
			triangles = append(triangles, t.addTriangle(vi.MeshIdx, vj.MeshIdx, vTop.MeshIdx))
			vTopIdx = vjIdx
			t.pop()
			if len(t.stack) == 0 {
				break
			}
			vTop = vj
			vjIdx = t.top()
			vj = verts[vjIdx]
		}
		t.stack = append(t.stack, vTopIdx, viIdx)
	} else {
		// Opposite chain: drain the stack, fanning from vi to each
		// consecutive pair of the old stack.
		t.onRight = !t.onRight
		vLast := vTop
		for len(t.stack) > 0 {
			vj = verts[t.top()]
			triangles = append(triangles, t.addTriangle(vi.MeshIdx, vLast.MeshIdx, vj.MeshIdx))
			vLast = vj
			t.pop()
		}
		t.stack = append(t.stack, vTopIdx, viIdx)
		t.otherSide = vTopIdx
	}
	return triangles, true
}

// Triangulate walks verts (the sweep's output) in sweep order, dispatching
// each vertex to the first triangulator that accepts it, spawning a new one
// when none does. It panics with an errs.LogicError if the resulting
// triangle count doesn't match V - 2K for V vertices and K chains.
func Triangulate(verts []sweep.VertAdj, sink *dbg.Sink) []geom.Triangle {
	type key struct{ order, idx int }
	keys := make([]key, len(verts))
	for i, v := range verts {
		keys[i] = key{v.SweepOrder, i}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].order != keys[j].order {
			return keys[i].order < keys[j].order
		}
		return keys[i].idx < keys[j].idx
	})

	var triangulators []*triangulator
	var triangles []geom.Triangle
	for _, k := range keys {
		vIdx := k.idx
		found := false
		for _, tri := range triangulators {
			ts, ok := tri.processVert(vIdx, verts)
			if ok {
				triangles = append(triangles, ts...)
				found = true
				break
			}
		}
		if !found {
			triangulators = append(triangulators, newTriangulator(vIdx))
			sink.Tracef("spawned triangulator at %s", sink.Name(vIdx))
		}
	}

	trianglesLeft := len(verts)
	for _, tri := range triangulators {
		trianglesLeft -= 2 + tri.triangleCount
	}
	if trianglesLeft != 0 {
		errs.Fatalf("wrong_triangle_count: %d verts, %d chains, %d triangles emitted, remainder %d",
			len(verts), len(triangulators), len(triangles), trianglesLeft)
	}
	return triangles
}
