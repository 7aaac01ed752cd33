// Package backup implements the topological fan-style fallback
// triangulator (C5), used when the primary sweep/monotone pipeline produces
// a non-manifold result. It trades triangle quality for guaranteed manifold
// topology on simple (non-self-overlapping) input, avoiding shared boundary
// edges on a best-effort basis. Ported from BackupTriangulate in
// polygon.cpp, with every index step routed through the same wrapped
// next/prev helpers the rest of this port uses, rather than the reference's
// occasional raw index arithmetic (which, unlike C++, Go would panic on the
// moment an index steps out of [0, n)).
package backup

import "github.com/hollowcore/polytri/internal/geom"

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

// Triangulate fans triangles in from alternating ends of each polygon loop,
// shifting the candidate triangle to the opposite side whenever it would
// share a boundary edge with one already emitted for the same polygon.
func Triangulate(polys geom.Polygons) []geom.Triangle {
	var triangles []geom.Triangle
	for _, poly := range polys {
		n := len(poly)
		if n < 3 {
			continue
		}
		start := 1
		end := n - 1
		tri := geom.Triangle{A: poly[end].Idx, B: poly[0].Idx, C: poly[start].Idx}
		startEdges := [2]int{poly[prev(start, n)].NextEdge, poly[start].NextEdge}
		endEdges := [2]int{poly[prev(end, n)].NextEdge, poly[end].NextEdge}
		forward := false
		for {
			if start == end {
				break
			}
			if geom.SharedEdge(startEdges, endEdges) {
				if forward {
					start = prev(start, n)
					end = prev(end, n)
					tri = geom.Triangle{A: poly[end].Idx, B: tri.A, C: tri.B}
				} else {
					start = next(start, n)
					end = next(end, n)
					tri = geom.Triangle{A: tri.B, B: tri.C, C: poly[start].Idx}
				}
				startEdges = [2]int{poly[prev(start, n)].NextEdge, poly[start].NextEdge}
				endEdges = [2]int{poly[prev(end, n)].NextEdge, poly[end].NextEdge}
				forward = !forward
			}
			triangles = append(triangles, tri)
			// Alternate by default to keep vertex degree bounded.
			forward = !forward
			if forward {
				start = next(start, n)
				startEdges = [2]int{poly[prev(start, n)].NextEdge, poly[start].NextEdge}
				tri = geom.Triangle{A: tri.A, B: tri.C, C: poly[start].Idx}
			} else {
				end = prev(end, n)
				endEdges = [2]int{poly[prev(end, n)].NextEdge, poly[end].NextEdge}
				tri = geom.Triangle{A: poly[end].Idx, B: tri.A, C: tri.C}
			}
		}
	}
	return triangles
}
