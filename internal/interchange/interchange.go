// Package interchange reads and writes the line-oriented text format used
// to import and export drawings:
//
//	CANVAS,<width>,<height>
//	LINE,<x1>,<y1>,<x2>,<y2>,<color>
//	CIRCLE,<cx>,<cy>,<radius>,<borderColor>[,<backgroundColor>]
//	ELLIPSE,<cx>,<cy>,<rx>,<ry>,<borderColor>[,<backgroundColor>]
//	CURVE,<p0x>,<p0y>,<p1x>,<p1y>,<p2x>,<p2y>,<p3x>,<p3y>,<color>
//	POLYGON,<n>,<x1>,<y1>,...,<xn>,<yn>,<borderColor>[,<backgroundColor>]
//
// Files carry no layer identity; every imported shape gets a fresh
// "layer-<n>" id.
package interchange

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/shape"
)

// MaxCanvas is the largest accepted CANVAS width or height.
const MaxCanvas = 16384

// Document is a parsed file.
type Document struct {
	// Width and Height are 0 when the CANVAS header is missing.
	Width, Height int
	Drawing       shape.Drawing
	// Skipped counts lines that were dropped as malformed or unknown.
	Skipped int
}

type parser struct {
	doc  Document
	next int
}

// Parse reads a whole file. Malformed and unknown lines are skipped with a
// warning; only a read error fails the parse.
func Parse(r io.Reader) (Document, error) {
	log := logging.For("interchange")
	p := &parser{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	sawHeader := false
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		cmd := strings.ToUpper(fields[0])
		args := fields[1:]

		if cmd == "CANVAS" {
			w, h, err := parseCanvas(args)
			if err != nil {
				log.Warn("skipping malformed line", "line", lineNo, "err", err)
				p.doc.Skipped++
				continue
			}
			p.doc.Width, p.doc.Height = w, h
			sawHeader = true
			continue
		}

		var err error
		switch cmd {
		case "LINE":
			err = p.line(args)
		case "CIRCLE":
			err = p.circle(args)
		case "ELLIPSE":
			err = p.ellipse(args)
		case "CURVE":
			err = p.curve(args)
		case "POLYGON":
			err = p.polygon(args)
		default:
			log.Warn("ignoring unknown command", "line", lineNo, "command", fields[0])
			p.doc.Skipped++
			continue
		}
		if err != nil {
			log.Warn("skipping malformed line", "line", lineNo, "command", cmd, "err", err)
			p.doc.Skipped++
		}
	}
	if err := sc.Err(); err != nil {
		return Document{}, fmt.Errorf("reading drawing: %w", err)
	}
	if !sawHeader {
		log.Warn("no CANVAS header, keeping the current canvas size")
	}
	log.Debug("parsed drawing", "shapes", p.doc.Drawing.Len(), "skipped", p.doc.Skipped)
	return p.doc, nil
}

func parseCanvas(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("CANVAS wants 2 fields, got %d", len(args))
	}
	w, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	if w <= 0 || h <= 0 || w > MaxCanvas || h > MaxCanvas {
		return 0, 0, fmt.Errorf("bad canvas size %dx%d", w, h)
	}
	return w, h, nil
}

func floats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite value %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func wantFields(cmd string, args []string, counts ...int) error {
	for _, n := range counts {
		if len(args) == n {
			return nil
		}
	}
	return fmt.Errorf("%s wants %v fields, got %d", cmd, counts, len(args))
}

// add stores s under the next synthetic layer.
func (p *parser) add(s shape.Shape, border, background string) {
	p.next++
	p.doc.Drawing.Add(s, shape.Layer{
		ID:              fmt.Sprintf("layer-%d", p.next),
		Name:            fmt.Sprintf("Layer %d", p.next),
		Visible:         true,
		BorderColor:     border,
		BackgroundColor: background,
	})
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (p *parser) line(args []string) error {
	if err := wantFields("LINE", args, 5); err != nil {
		return err
	}
	v, err := floats(args[:4])
	if err != nil {
		return err
	}
	p.add(shape.Line{Start: shape.Pt(v[0], v[1]), End: shape.Pt(v[2], v[3])}, args[4], "")
	return nil
}

func (p *parser) circle(args []string) error {
	if err := wantFields("CIRCLE", args, 4, 5); err != nil {
		return err
	}
	v, err := floats(args[:3])
	if err != nil {
		return err
	}
	if v[2] < 0 {
		return fmt.Errorf("negative radius %v", v[2])
	}
	p.add(shape.Circle{Center: shape.Pt(v[0], v[1]), Radius: v[2]}, args[3], optional(args, 4))
	return nil
}

func (p *parser) ellipse(args []string) error {
	if err := wantFields("ELLIPSE", args, 5, 6); err != nil {
		return err
	}
	v, err := floats(args[:4])
	if err != nil {
		return err
	}
	if v[2] < 0 || v[3] < 0 {
		return fmt.Errorf("negative radius %v,%v", v[2], v[3])
	}
	p.add(shape.Ellipse{Center: shape.Pt(v[0], v[1]), RX: v[2], RY: v[3]}, args[4], optional(args, 5))
	return nil
}

func (p *parser) curve(args []string) error {
	if err := wantFields("CURVE", args, 9); err != nil {
		return err
	}
	v, err := floats(args[:8])
	if err != nil {
		return err
	}
	p.add(shape.Curve{
		P0: shape.Pt(v[0], v[1]), P1: shape.Pt(v[2], v[3]),
		P2: shape.Pt(v[4], v[5]), P3: shape.Pt(v[6], v[7]),
	}, args[8], "")
	return nil
}

func (p *parser) polygon(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("POLYGON without a point count")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 2 {
		return fmt.Errorf("bad POLYGON point count %q", args[0])
	}
	if err := wantFields("POLYGON", args, 2*n+2, 2*n+3); err != nil {
		return err
	}
	v, err := floats(args[1 : 2*n+1])
	if err != nil {
		return err
	}
	pts := make([]shape.Point, n)
	for i := range pts {
		pts[i] = shape.Pt(v[2*i], v[2*i+1])
	}
	p.add(shape.Polygon{Points: pts}, args[2*n+1], optional(args, 2*n+2))
	return nil
}
