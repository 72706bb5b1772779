package server

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"bestseller-dashboard/models"
	"bestseller-dashboard/services"
)

const plotSize = 100.0

type pageData struct {
	Title     string
	Error     string
	Options   services.SelectionOptions
	Selection models.Selection
	View      *models.DashboardView
	Books     []models.Book
}

type plotBar struct {
	X, Y, W, H float64
	Label      string
	Count      int
}

type plotDot struct {
	CX, CY, R float64
	Fill      string
	Title     string
}

var pageFuncs = template.FuncMap{
	"yearSelected":  yearSelected,
	"genreSelected": genreSelected,
	"barWidth":      barWidth,
	"currency":      services.FormatCurrency,
	"count":         services.FormatInt,
	"histogram":     histogramBars,
	"curve":         curvePolyline,
	"scatter":       scatterDots,
}

func yearSelected(sel models.Selection, year int) bool {
	for _, y := range sel.Years {
		if y == year {
			return true
		}
	}
	return false
}

func genreSelected(sel models.Selection, genre string) bool {
	for _, g := range sel.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// barWidth is the percentage width of point i relative to the largest point.
func barWidth(points []models.ChartPoint, i int) float64 {
	var max float64
	for _, p := range points {
		max = math.Max(max, p.Value)
	}
	if max == 0 {
		return 0
	}
	return math.Round(points[i].Value / max * plotSize)
}

func maxCount(bins []models.HistogramBin) float64 {
	var max float64
	for _, b := range bins {
		max = math.Max(max, float64(b.Count))
	}
	return max
}

func histogramBars(c *models.ChartSpec) []plotBar {
	if len(c.Bins) == 0 {
		return nil
	}
	top := maxCount(c.Bins)
	w := plotSize / float64(len(c.Bins))

	bars := make([]plotBar, 0, len(c.Bins))
	for i, b := range c.Bins {
		h := 0.0
		if top > 0 {
			h = float64(b.Count) / top * plotSize
		}
		bars = append(bars, plotBar{
			X: float64(i) * w, Y: plotSize - h, W: w, H: h,
			Label: fmt.Sprintf("%.2f - %.2f", b.Start, b.End),
			Count: b.Count,
		})
	}
	return bars
}

// curvePolyline maps the density curve onto the histogram's coordinate box.
func curvePolyline(c *models.ChartSpec) string {
	if len(c.Curve) == 0 || len(c.Bins) == 0 {
		return ""
	}
	lo, hi := c.Bins[0].Start, c.Bins[len(c.Bins)-1].End
	top := maxCount(c.Bins)
	for _, p := range c.Curve {
		top = math.Max(top, p.Y)
	}
	if hi <= lo || top == 0 {
		return ""
	}

	var sb strings.Builder
	for i, p := range c.Curve {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.2f,%.2f", (p.X-lo)/(hi-lo)*plotSize, plotSize-p.Y/top*plotSize)
	}
	return sb.String()
}

// scatterDots lays the points out in a 100x100 box. Colour runs from blue
// (cheapest) to red (most expensive) and radius grows with the same value.
func scatterDots(c *models.ChartSpec) []plotDot {
	if len(c.Scatter) == 0 {
		return nil
	}
	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)
	clo, chi := math.Inf(1), math.Inf(-1)
	for _, p := range c.Scatter {
		xlo, xhi = math.Min(xlo, p.X), math.Max(xhi, p.X)
		ylo, yhi = math.Min(ylo, p.Y), math.Max(yhi, p.Y)
		clo, chi = math.Min(clo, p.Color), math.Max(chi, p.Color)
	}

	dots := make([]plotDot, 0, len(c.Scatter))
	for _, p := range c.Scatter {
		t := unit(p.Color, clo, chi)
		dots = append(dots, plotDot{
			CX:    4 + unit(p.X, xlo, xhi)*(plotSize-8),
			CY:    plotSize - 4 - unit(p.Y, ylo, yhi)*(plotSize-8),
			R:     1 + 3*unit(p.Size, clo, chi),
			Fill:  fmt.Sprintf("rgb(%d,60,%d)", int(40+200*t), int(240-200*t)),
			Title: strings.Join(p.Hover, " | "),
		})
	}
	return dots
}

func unit(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
