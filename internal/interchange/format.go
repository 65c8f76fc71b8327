package interchange

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"VectorBoard/internal/shape"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Format writes d in the interchange format: the CANVAS header first, then
// every shape with a layer in the order lines, circles, ellipses, curves,
// polygons.
func Format(w io.Writer, width, height int, d *shape.Drawing) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "CANVAS,%d,%d\n", width, height)

	write := func(fields ...string) {
		bw.WriteString(strings.Join(fields, ","))
		bw.WriteByte('\n')
	}
	withBackground := func(fields []string, bg string) []string {
		if bg != "" {
			return append(fields, bg)
		}
		return fields
	}

	for _, v := range d.Lines {
		if l := d.Layer(v.LayerID); l != nil {
			write("LINE", num(v.Start.X), num(v.Start.Y), num(v.End.X), num(v.End.Y), l.BorderColor)
		}
	}
	for _, v := range d.Circles {
		if l := d.Layer(v.LayerID); l != nil {
			write(withBackground([]string{"CIRCLE", num(v.Center.X), num(v.Center.Y), num(v.Radius), l.BorderColor}, l.BackgroundColor)...)
		}
	}
	for _, v := range d.Ellipses {
		if l := d.Layer(v.LayerID); l != nil {
			write(withBackground([]string{"ELLIPSE", num(v.Center.X), num(v.Center.Y), num(v.RX), num(v.RY), l.BorderColor}, l.BackgroundColor)...)
		}
	}
	for _, v := range d.Curves {
		if l := d.Layer(v.LayerID); l != nil {
			write("CURVE", num(v.P0.X), num(v.P0.Y), num(v.P1.X), num(v.P1.Y),
				num(v.P2.X), num(v.P2.Y), num(v.P3.X), num(v.P3.Y), l.BorderColor)
		}
	}
	for _, v := range d.Polygons {
		l := d.Layer(v.LayerID)
		if l == nil || len(v.Points) < 2 {
			continue
		}
		fields := []string{"POLYGON", strconv.Itoa(len(v.Points))}
		for _, p := range v.Points {
			fields = append(fields, num(p.X), num(p.Y))
		}
		fields = append(fields, l.BorderColor)
		write(withBackground(fields, l.BackgroundColor)...)
	}
	return bw.Flush()
}
