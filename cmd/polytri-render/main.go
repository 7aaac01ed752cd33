// Command polytri-render triangulates a set of polygons read from stdin and
// writes a PNG showing the result, optionally previewing it inline in a
// terminal that understands the iTerm2 image protocol.
//
// Input is newline-separated "x y" points, one polygon per blank-line-
// separated block. Pass --svg to read an SVG <polygon> element instead.
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/hollowcore/polytri"
)

var (
	svgPath = kingpin.Flag("svg", "read a single <polygon> element from this SVG file instead of stdin").String()
	outPath = kingpin.Flag("out", "PNG output path").Default("/tmp/polytri-render.png").String()
	scale   = kingpin.Flag("scale", "pixels per input unit").Default("20").Float64()
	preview = kingpin.Flag("preview", "print the PNG inline via the terminal image protocol").Bool()
	verbose = kingpin.Flag("verbose", "print trace diagnostics to stderr").Bool()
)

func main() {
	kingpin.Parse()

	var polys polytri.Polygons
	if *svgPath != "" {
		polys = readSVGPolygon(*svgPath)
	} else {
		polys = readStdinPolygons()
	}
	fmt.Fprintf(os.Stderr, "read %d polygon(s)\n", len(polys))

	sink := polytri.NewSink(os.Stderr, *verbose, true)
	triangles, err := polytri.Triangulate(polys, polytri.WithSink(sink))
	if err != nil {
		fmt.Fprintf(os.Stderr, "triangulate: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "emitted %d triangle(s)\n", len(triangles))

	render(polys, triangles, *outPath, *scale)
	if *preview {
		if err := imgcat.CatFile(*outPath, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		}
	}
}

func readStdinPolygons() polytri.Polygons {
	var polys polytri.Polygons
	var verts polytri.SimplePolygon
	idx := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if len(verts) > 0 {
				polys = append(polys, closeLoop(verts))
				verts = nil
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintf(os.Stderr, "skipping malformed line %q\n", line)
			continue
		}
		x, _ := strconv.ParseFloat(fields[0], 64)
		y, _ := strconv.ParseFloat(fields[1], 64)
		verts = append(verts, polytri.PolyVert{Pos: polytri.Point{X: x, Y: y}, Idx: idx})
		idx++
	}
	if len(verts) > 0 {
		polys = append(polys, closeLoop(verts))
	}
	return polys
}

func readSVGPolygon(path string) polytri.Polygons {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	root, err := svgparser.Parse(f, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
		os.Exit(1)
	}
	els := root.FindAll("polygon")
	if len(els) == 0 {
		fmt.Fprintf(os.Stderr, "no <polygon> element in %s\n", path)
		os.Exit(1)
	}

	var verts polytri.SimplePolygon
	idx := 0
	for _, pair := range strings.Fields(els[0].Attributes["points"]) {
		coords := strings.Split(pair, ",")
		if len(coords) != 2 {
			continue
		}
		x, _ := strconv.ParseFloat(coords[0], 64)
		y, _ := strconv.ParseFloat(coords[1], 64)
		verts = append(verts, polytri.PolyVert{Pos: polytri.Point{X: x, Y: y}, Idx: idx})
		idx++
	}
	return polytri.Polygons{closeLoop(verts)}
}

// closeLoop tags each vertex's NextEdge (the boundary edge it starts) with
// the vertex's own Idx. Idx comes from a counter shared by every polygon
// read, so no two boundary edges of the input carry the same tag.
func closeLoop(verts polytri.SimplePolygon) polytri.SimplePolygon {
	for i := range verts {
		verts[i].NextEdge = verts[i].Idx
	}
	return verts
}

func render(polys polytri.Polygons, triangles []polytri.Triangle, path string, scale float64) {
	pos := make(map[int]polytri.Point)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, v := range poly {
			pos[v.Idx] = v.Pos
			minX = math.Min(minX, v.Pos.X)
			minY = math.Min(minY, v.Pos.Y)
			maxX = math.Max(maxX, v.Pos.X)
			maxY = math.Max(maxY, v.Pos.Y)
		}
	}

	const padding = 20
	width := int(scale*(maxX-minX)) + padding*2
	height := int(scale*(maxY-minY)) + padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padding, padding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetRGB(0.8, 0.9, 1)
	c.SetLineWidth(1 / scale)
	for _, t := range triangles {
		c.MoveTo(pos[t.A].X, pos[t.A].Y)
		c.LineTo(pos[t.B].X, pos[t.B].Y)
		c.LineTo(pos[t.C].X, pos[t.C].Y)
		c.ClosePath()
	}
	c.FillPreserve()
	c.SetRGB(0.1, 0.3, 0.6)
	c.Stroke()

	c.SetLineWidth(2 / scale)
	c.SetRGB(0, 0, 0)
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		c.MoveTo(poly[0].Pos.X, poly[0].Pos.Y)
		for _, v := range poly[1:] {
			c.LineTo(v.Pos.X, v.Pos.Y)
		}
		c.ClosePath()
	}
	c.Stroke()

	if err := c.SavePNG(path); err != nil {
		fmt.Fprintf(os.Stderr, "save %s: %v\n", path, err)
		os.Exit(1)
	}
}
