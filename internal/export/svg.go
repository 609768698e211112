// Package export renders recorded series to standalone report
// artifacts.
package export

import (
	"fmt"
	"math"
	"strings"
)

// LineSVG renders ys against xs as a single polyline on a dark
// background. The slices must have equal length; NaN points are
// skipped. Fewer than two plottable points yields an empty string.
func LineSVG(xs, ys []float64, width, height int, stroke string) string {
	if len(xs) != len(ys) || len(xs) < 2 {
		return ""
	}

	minX, maxX, okX := bounds(xs)
	minY, maxY, okY := bounds(ys)
	if !okX || !okY {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, stroke))

	plotted := 0
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)

		if plotted == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
		plotted++
	}
	if plotted < 2 {
		return ""
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// bounds returns the finite extent of vs; ok is false when no finite
// value exists.
func bounds(vs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, lo <= hi
}
