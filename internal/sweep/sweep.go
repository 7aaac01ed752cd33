// Package sweep implements the plane-sweep monotone decomposition (C3):
// classifying each vertex of the input polygons as it is reached in sweep
// order and inserting diagonals so the result decomposes into y-monotone
// pieces. This is a direct port of Monotones from the reference
// polygon.cpp, generalized from a fixed std::vector<VertAdj> growing by
// push_back to a Go slice growing by append; the index-based addressing
// scheme is unchanged, so growth never invalidates a previously recorded
// index.
package sweep

import (
	"sort"

	"github.com/hollowcore/polytri/internal/dbg"
	"github.com/hollowcore/polytri/internal/errs"
	"github.com/hollowcore/polytri/internal/geom"
)

// VertAdj is one vertex of the sweep's working graph: its plane position,
// the caller identity it came from, its neighbors in the left/right ring,
// its matched diagonal partner (Across), whether it has been split into two
// copies (Merge), and its rank along the sweep (SweepOrder).
type VertAdj struct {
	Pos        geom.Point
	MeshIdx    int
	Right      int
	Left       int
	Across     int
	Merge      bool
	SweepOrder int
}

// Processed reports whether this vertex has already been reached by the
// sweep (i.e. has a matched diagonal).
func (v VertAdj) Processed() bool { return v.Across >= 0 }

type vertType int

const (
	vStart vertType = iota
	vEnd
	vRightwards
	vLeftwards
	vMerge
	vSplit
	vRevStart
)

func next(i, n int) int {
	i++
	if i >= n {
		return 0
	}
	return i
}

func prev(i, n int) int {
	i--
	if i < 0 {
		return n - 1
	}
	return i
}

type builder struct {
	verts []VertAdj
	sink  *dbg.Sink
}

// Decompose runs the plane sweep over polys and returns the resulting
// sweep-vertex buffer, decomposed into y-monotone pieces via the left/right
// ring. It panics with an errs.LogicError (recovered at polytri.Triangulate)
// if an internal invariant is violated.
func Decompose(polys geom.Polygons, sink *dbg.Sink) []VertAdj {
	b := &builder{sink: sink}
	type sweepKey struct {
		y   float64
		idx int
	}
	var sweepLine []sweepKey

	for _, poly := range polys {
		start := len(b.verts)
		n := len(poly)
		for i, pv := range poly {
			b.verts = append(b.verts, VertAdj{
				Pos:     pv.Pos,
				MeshIdx: pv.Idx,
				Right:   next(i, n) + start,
				Left:    prev(i, n) + start,
				Across:  -1,
				Merge:   false,
			})
			idx := start + i
			sweepLine = append(sweepLine, sweepKey{b.verts[idx].Pos.Y, idx})
		}
	}

	// Sort identically to internal/monotone's sort over SweepOrder, including
	// when y values tie, so monotone pieces are walked top-to-bottom in the
	// same order they were produced here.
	sort.Slice(sweepLine, func(i, j int) bool {
		if sweepLine[i].y != sweepLine[j].y {
			return sweepLine[i].y < sweepLine[j].y
		}
		return sweepLine[i].idx < sweepLine[j].idx
	})

	lastType := vStart
	for i, key := range sweepLine {
		b.verts[key.idx].SweepOrder = i
		lastType = b.processVert(key.idx)
		b.sink.Tracef("sweep vert %s (mesh %d): %v", b.sink.Name(key.idx), b.verts[key.idx].MeshIdx, lastType)
	}
	b.check()
	if lastType != vEnd {
		errs.Fatalf("did_not_finish_with_end: monotone decomposition did not finish with an END")
	}
	return b.verts
}

func (b *builder) vert(idx int) *VertAdj  { return &b.verts[idx] }
func (b *builder) right(v VertAdj) VertAdj { return b.verts[v.Right] }
func (b *builder) left(v VertAdj) VertAdj  { return b.verts[v.Left] }
func (b *builder) across(v VertAdj) VertAdj {
	return b.verts[v.Across]
}
func (b *builder) numVerts() int { return len(b.verts) }

func (b *builder) match(idx1, idx2 int) {
	b.vert(idx1).Across = idx2
	b.vert(idx2).Across = idx1
}

func (b *builder) link(leftIdx, rightIdx int) {
	b.vert(leftIdx).Right = rightIdx
	b.vert(rightIdx).Left = leftIdx
}

// duplicate splits vert vIdx into two copies at a merge event: the original
// becomes the left copy (flagged Merge), and a new vertex appended to the
// buffer becomes the right copy. Across pointers of both copies are resolved
// according to which neighbors have already been processed.
func (b *builder) duplicate(vIdx int) {
	b.vert(vIdx).Merge = true
	vRightIdx := b.numVerts()
	b.verts = append(b.verts, *b.vert(vIdx))
	v := *b.vert(vIdx)

	b.vert(v.Right).Left = vRightIdx

	if v.Processed() {
		if b.right(v).Processed() {
			b.match(vRightIdx, v.Across)
			b.match(vIdx, vIdx)
		} else {
			b.match(vRightIdx, vRightIdx)
		}
	} else {
		if b.left(v).Processed() {
			b.match(vIdx, b.helper(vIdx, v.Left))
		} else {
			b.vert(vIdx).Across = vIdx
		}
		if b.right(v).Processed() {
			b.match(vRightIdx, b.helper(vIdx, v.Right))
		} else {
			b.vert(vRightIdx).Across = vRightIdx
		}
	}
	b.link(vIdx, vRightIdx)
}

// splitVerts inserts the diagonal helper<->v into the left/right ring by
// appending a duplicate of v to the buffer and rewiring pointers around it.
// It returns the index of the new vertex.
func (b *builder) splitVerts(vIdx, leftDupeIdx int) int {
	b.vert(leftDupeIdx).Merge = false
	b.vert(b.vert(leftDupeIdx).Right).Merge = false

	newVertIdx := b.numVerts()
	b.verts = append(b.verts, *b.vert(vIdx))

	b.vert(b.vert(newVertIdx).Left).Right = newVertIdx
	b.link(newVertIdx, b.vert(leftDupeIdx).Right)
	b.link(leftDupeIdx, vIdx)
	return newVertIdx
}

// helper returns the vertex currently acting as the helper of the edge from
// vIdx to neighborIdx: the neighbor's diagonal partner, or the neighbor
// itself if that partner is vIdx.
func (b *builder) helper(vIdx, neighborIdx int) int {
	helperIdx := b.vert(neighborIdx).Across
	if helperIdx == vIdx {
		helperIdx = neighborIdx
	}
	return helperIdx
}

// positiveExteriorHelper performs the linear scan for the nearest active
// edge crossing the horizontal line through vIdx to its left, returning the
// rightward processed edge's far endpoint if the sweep is currently inside a
// positive winding region, or -1 otherwise.
func (b *builder) positiveExteriorHelper(vIdx int) int {
	v := *b.vert(vIdx)
	bestX := negInf
	helperIdx := -1
	winding := 0
	for i := 0; i < b.numVerts(); i++ {
		vi := b.verts[i]
		left := b.left(vi)
		if vi.Processed() == left.Processed() {
			continue // not an active edge
		}
		var x float64
		denom := vi.Pos.Y - left.Pos.Y
		if denom == 0 {
			// A horizontal active edge only stays active for the sweep step(s)
			// that share its own y, so the numerator is always zero here too;
			// take the leftmost endpoint rather than dividing 0/0.
			x = minF(vi.Pos.X, left.Pos.X)
		} else {
			a := (vi.Pos.Y - v.Pos.Y) / denom
			a = maxF(minF(a, 1.0), 0.0)
			x = (1.0-a)*vi.Pos.X + a*left.Pos.X
		}
		if x < v.Pos.X {
			if vi.Processed() {
				winding++
				if x > bestX {
					bestX = x
					helperIdx = i
				}
			} else {
				winding--
			}
		}
	}
	if winding == 1 {
		return helperIdx
	}
	return -1
}

const negInf = -1e308

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (b *builder) processVert(idx int) vertType {
	vert := *b.vert(idx)
	rightProcessed := b.right(vert).Processed()
	leftProcessed := b.left(vert).Processed()

	switch {
	case rightProcessed && leftProcessed:
		right := b.right(vert)
		left := b.left(vert)
		if right.Across == vert.Left {
			b.vert(idx).Across = idx
			return vEnd
		}
		rightAcross := b.across(right)
		if rightAcross.Right == left.Across && rightAcross.Merge {
			newVertIdx := b.splitVerts(idx, right.Across)
			b.vert(idx).Across = idx
			b.vert(newVertIdx).Across = newVertIdx
			return vEnd
		}
		// Merge: idx splits into a left and right copy; each copy may
		// cascade into a further split if the helper it lands on is itself
		// mid-merge.
		b.duplicate(idx)
		if acrossOfIdx := b.across(*b.vert(idx)); acrossOfIdx.Merge {
			helperIdx := acrossOfIdx.Left
			b.splitVerts(idx, helperIdx)
			b.match(idx, b.vert(helperIdx).Across)
		}
		rightOfIdx := b.vert(idx).Right
		if rightAcross := b.across(*b.vert(rightOfIdx)); rightAcross.Merge {
			helperIdx := b.vert(rightOfIdx).Across
			newVertIdx := b.splitVerts(rightOfIdx, helperIdx)
			b.match(newVertIdx, b.vert(b.vert(newVertIdx).Right).Across)
		}
		return vMerge

	case rightProcessed && !leftProcessed:
		// Leftwards
		helperIdx := b.helper(idx, vert.Right)
		if b.vert(helperIdx).Merge {
			newVertIdx := b.splitVerts(idx, helperIdx)
			b.match(newVertIdx, b.vert(b.vert(newVertIdx).Right).Across)
			b.vert(idx).Across = idx
		} else {
			b.match(idx, helperIdx)
		}
		return vLeftwards

	case !rightProcessed && leftProcessed:
		// Rightwards
		helperIdx := b.helper(idx, vert.Left)
		if b.vert(helperIdx).Merge {
			helperIdx = b.vert(helperIdx).Left
			newVertIdx := b.splitVerts(idx, helperIdx)
			b.vert(newVertIdx).Across = newVertIdx
			b.match(idx, b.vert(helperIdx).Across)
		} else {
			b.match(idx, helperIdx)
		}
		return vRightwards

	default:
		if geom.CCW(vert.Pos, b.right(vert).Pos, b.left(vert).Pos) > 0 {
			b.vert(idx).Across = idx
			return vStart
		}
		helperIdx := b.positiveExteriorHelper(idx)
		if helperIdx >= 0 {
			if b.vert(helperIdx).Pos.Y < b.across(*b.vert(helperIdx)).Pos.Y {
				helperIdx = b.vert(helperIdx).Across
			}
			if !b.vert(helperIdx).Merge {
				b.duplicate(helperIdx)
			}
			newVertIdx := b.splitVerts(idx, helperIdx)
			b.match(newVertIdx, b.vert(b.vert(newVertIdx).Right).Across)
			b.match(idx, b.vert(helperIdx).Across)
			return vSplit
		}
		b.vert(idx).Across = idx
		return vRevStart
	}
}

// check verifies, after the sweep completes, that every vertex and its right
// neighbor agree (invariant 1), that no monotone has only two edges
// (invariant 2), and that the left/right ring assembles into closed
// polygons. It does not check that every vertex is processed (invariant 3).
func (b *builder) check() {
	edges := make([]geom.EdgeVerts, 0, len(b.verts))
	for i, v := range b.verts {
		edges = append(edges, geom.EdgeVerts{First: i, Second: v.Right, Edge: geom.NoIdx})
		if b.verts[v.Right].Right == i {
			errs.Fatalf("two_edge_monotone: vertex %d forms a two-edge monotone", i)
		}
		if b.verts[v.Right].Left != i {
			errs.Fatalf("neighbors_disagree: vertex %d and its right neighbor disagree", i)
		}
	}
	if _, err := geom.Assemble(edges); err != nil {
		errs.Fatalf("neighbors_disagree: left/right ring does not assemble into closed polygons: %v", err)
	}
}
