// Package validate implements the post-triangulation checks (C6): that the
// output is a 2-manifold with respect to the input boundary, and that no
// two adjacent output triangles fold across their shared edge. Ported from
// CheckManifold/CheckFolded in polygon.cpp.
package validate

import (
	"sort"

	"github.com/hollowcore/polytri/internal/errs"
	"github.com/hollowcore/polytri/internal/geom"
	"github.com/pkg/errors"
)

// Manifold checks a closed set of halfedges directly: every undirected edge
// must appear exactly once forward and once backward, with no duplicate
// canonical edge in either direction (a 2-manifold condition), and no
// interior-only edge may bridge two vertices that already co-lie on the
// same polygon edge.
func Manifold(halfedges []geom.EdgeVerts) error {
	if len(halfedges)%2 != 0 {
		return errors.Wrapf(errs.ErrOddHalfedgeCount, "%d halfedges", len(halfedges))
	}
	nEdges := len(halfedges) / 2

	var forward, backward []geom.EdgeVerts
	for _, e := range halfedges {
		switch {
		case e.Second > e.First:
			forward = append(forward, e)
		case e.Second < e.First:
			backward = append(backward, e)
		}
	}
	if len(forward) != nEdges {
		return errors.Wrapf(errs.ErrHalfShouldBeForward, "got %d, want %d", len(forward), nEdges)
	}
	if len(backward) != nEdges {
		return errors.Wrapf(errs.ErrHalfShouldBeBackward, "got %d, want %d", len(backward), nEdges)
	}

	for i := range backward {
		backward[i].First, backward[i].Second = backward[i].Second, backward[i].First
	}
	cmp := func(s []geom.EdgeVerts) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].First != s[j].First {
				return s[i].First < s[j].First
			}
			return s[i].Second < s[j].Second
		}
	}
	sort.Slice(forward, cmp(forward))
	sort.Slice(backward, cmp(backward))

	for i := 0; i < nEdges; i++ {
		if forward[i].First != backward[i].First || forward[i].Second != backward[i].Second {
			return errors.Wrapf(errs.ErrForwardBackwardMismatch, "edge %d: (%d,%d) vs (%d,%d)",
				i, forward[i].First, forward[i].Second, backward[i].First, backward[i].Second)
		}
		if i > 0 {
			if forward[i-1].First == forward[i].First && forward[i-1].Second == forward[i].Second {
				return errors.Wrapf(errs.ErrNot2Manifold, "duplicate forward edge (%d,%d)", forward[i].First, forward[i].Second)
			}
			if backward[i-1].First == backward[i].First && backward[i-1].Second == backward[i].Second {
				return errors.Wrapf(errs.ErrNot2Manifold, "duplicate backward edge (%d,%d)", backward[i].First, backward[i].Second)
			}
		}
	}

	// No interior edge may bridge two vertices that already co-lie on the
	// same polygon edge.
	vert2edges := make(map[int][2]int)
	recordEdgeTag := func(vert, edge int) {
		pair, ok := vert2edges[vert]
		if !ok {
			vert2edges[vert] = [2]int{edge, geom.Invalid}
			return
		}
		pair[1] = edge
		vert2edges[vert] = pair
	}
	for _, he := range halfedges {
		if he.Edge == geom.Interior {
			continue
		}
		recordEdgeTag(he.First, he.Edge)
		recordEdgeTag(he.Second, he.Edge)
	}
	for i := 0; i < nEdges; i++ {
		if forward[i].Edge == geom.Interior && backward[i].Edge == geom.Interior {
			tags0 := vert2edges[forward[i].First]
			tags1 := vert2edges[forward[i].Second]
			if geom.SharedEdge(tags0, tags1) {
				return errors.Wrapf(errs.ErrInterfaceEdgeAdded, "edge (%d,%d)", forward[i].First, forward[i].Second)
			}
		}
	}
	return nil
}

// TrianglesAgainstPolygons forms the halfedge multiset implied by triangles
// (tagged Interior) plus the reversed boundary halfedges of polys, and
// delegates to Manifold.
func TrianglesAgainstPolygons(triangles []geom.Triangle, polys geom.Polygons) error {
	halfedges := geom.TrianglesToEdges(triangles)
	for _, e := range geom.PolygonsToEdges(polys) {
		halfedges = append(halfedges, geom.EdgeVerts{First: e.Second, Second: e.First, Edge: e.Edge})
	}
	return Manifold(halfedges)
}

type foldedHalfedge struct {
	first, second, opp int
}

// Folded checks that every interior edge's two flanking triangles bend the
// same way: for an edge with opposite vertices opp_L (from the forward
// triangle) and opp_R (from the backward triangle), CCW(origin, opp_L, dest)
// and CCW(origin, dest, opp_R) must not have opposite signs.
func Folded(triangles []geom.Triangle, polys geom.Polygons) error {
	halfedges := make([]foldedHalfedge, 0, len(triangles)*3)
	for _, t := range triangles {
		halfedges = append(halfedges,
			foldedHalfedge{t.A, t.B, t.C},
			foldedHalfedge{t.B, t.C, t.A},
			foldedHalfedge{t.C, t.A, t.B},
		)
	}

	vertPos := make(map[int]geom.Point)
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		vertPos[poly[0].Idx] = poly[0].Pos
		for i := 1; i < len(poly); i++ {
			halfedges = append(halfedges, foldedHalfedge{poly[i].Idx, poly[i-1].Idx, -1})
			vertPos[poly[i].Idx] = poly[i].Pos
		}
		halfedges = append(halfedges, foldedHalfedge{poly[0].Idx, poly[len(poly)-1].Idx, -1})
	}

	nEdges := len(halfedges) / 2
	var forward, backward []foldedHalfedge
	for _, e := range halfedges {
		switch {
		case e.second > e.first:
			forward = append(forward, e)
		case e.second < e.first:
			backward = append(backward, e)
		}
	}
	for i := range backward {
		backward[i].first, backward[i].second = backward[i].second, backward[i].first
	}
	cmp := func(s []foldedHalfedge) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].first != s[j].first {
				return s[i].first < s[j].first
			}
			return s[i].second < s[j].second
		}
	}
	sort.Slice(forward, cmp(forward))
	sort.Slice(backward, cmp(backward))

	for i := 0; i < nEdges && i < len(forward) && i < len(backward); i++ {
		if forward[i].opp < 0 || backward[i].opp < 0 {
			continue
		}
		origin := vertPos[forward[i].first]
		edge := vertPos[forward[i].second]
		vL := vertPos[forward[i].opp]
		vR := vertPos[backward[i].opp]
		ccwL := geom.CCW(origin, vL, edge)
		ccwR := geom.CCW(origin, edge, vR)
		if ccwL*ccwR < 0 {
			return errors.Wrapf(errs.ErrTriangulationFolded, "edge (%d,%d)", forward[i].first, forward[i].second)
		}
	}
	return nil
}
