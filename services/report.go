package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"bestseller-dashboard/models"
)

const (
	barWidth       = 40
	scatterPreview = 5
)

// ReportPrinter renders a DashboardView as an ANSI terminal report.
type ReportPrinter struct {
	w     io.Writer
	color bool
}

func NewReportPrinter(w io.Writer, color bool) *ReportPrinter {
	return &ReportPrinter{w: w, color: color}
}

func (p *ReportPrinter) style(code, s string) string {
	if !p.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func (p *ReportPrinter) Print(v models.DashboardView) {
	sep := strings.Repeat("═", 64)

	fmt.Fprintf(p.w, "\n%s\n", p.style("1;35", sep))
	fmt.Fprintf(p.w, "%s\n", p.style("1;35", "  📚 AMAZON BESTSELLER BOOKS: EXPLORATORY ANALYSIS"))
	fmt.Fprintf(p.w, "%s\n\n", p.style("1;35", sep))

	if v.Warning != nil {
		fmt.Fprintf(p.w, "  %s\n\n", p.style("1;33", "⚠ "+v.Warning.Message))
		return
	}

	fmt.Fprintf(p.w, "  Years  : %s\n", joinInts(v.Selection.Years))
	fmt.Fprintf(p.w, "  Genres : %s\n", strings.Join(v.Selection.Genres, ", "))
	fmt.Fprintf(p.w, "  Books  : %s\n\n", p.style("1", FormatInt(v.RowCount)))

	for _, s := range v.Sections {
		p.printSection(s)
	}

	fmt.Fprintf(p.w, "%s\n\n", p.style("1;35", sep))
}

func (p *ReportPrinter) printSection(s models.Section) {
	thin := strings.Repeat("─", 64)

	fmt.Fprintf(p.w, "%s\n", p.style("1;33", "  "+s.Title))
	fmt.Fprintf(p.w, "  %s\n", thin)

	if s.Empty && s.Kind != models.KindNarrative {
		fmt.Fprintf(p.w, "  %s\n\n", NoDataMessage)
		return
	}

	switch s.Kind {
	case models.KindChart:
		p.printChart(s.Chart)
	case models.KindTable:
		p.printTable(s.Table)
	case models.KindNarrative:
		for _, line := range s.Narrative.Lines {
			fmt.Fprintf(p.w, "  • %s\n", line)
		}
		if s.Narrative.Conclusion != "" {
			fmt.Fprintf(p.w, "\n  %s\n", p.style("1", s.Narrative.Conclusion))
		}
	}
	fmt.Fprintln(p.w)
}

func (p *ReportPrinter) printChart(c *models.ChartSpec) {
	switch c.Type {
	case models.ChartBar:
		var max float64
		for _, pt := range c.Points {
			max = math.Max(max, pt.Value)
		}
		for _, pt := range c.Points {
			fmt.Fprintf(p.w, "  %-30s %s %s\n", truncate(pt.Label, 28), p.style("32", bar(pt.Value, max)), pt.Text)
		}
	case models.ChartHistogram:
		var max float64
		for _, b := range c.Bins {
			max = math.Max(max, float64(b.Count))
		}
		for _, b := range c.Bins {
			fmt.Fprintf(p.w, "  %5.2f - %5.2f  %s %d\n", b.Start, b.End, p.style("36", bar(float64(b.Count), max)), b.Count)
		}
	case models.ChartViolin:
		for _, v := range c.Violins {
			fmt.Fprintf(p.w, "  %-14s min %s | Q1 %s | median %s | Q3 %s | max %s (%d books)\n",
				truncate(v.Category, 14), FormatCurrency(v.Min), FormatCurrency(v.Q1),
				FormatCurrency(v.Median), FormatCurrency(v.Q3), FormatCurrency(v.Max), v.Count)
		}
	case models.ChartScatter:
		fmt.Fprintf(p.w, "  %d points: x = %s, y = %s, colour/size = %s\n", len(c.Scatter), c.XAxis, c.YAxis, c.ColorAxis)
		for i, pt := range c.Scatter {
			if i == scatterPreview {
				fmt.Fprintf(p.w, "  … %d more\n", len(c.Scatter)-scatterPreview)
				break
			}
			fmt.Fprintf(p.w, "  %.1f ★  %9s reviews  %s  %s\n", pt.X, FormatInt(int(pt.Y)), pt.Hover[2], truncate(pt.Hover[0], 30))
		}
	}
}

func (p *ReportPrinter) printTable(t *models.TableSpec) {
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if t.Columns[i].Key == "name" {
				cell = truncate(cell, 38)
			}
			cells = append(cells, cell)
		}
		fmt.Fprintf(p.w, "  %s. %s\n", p.style("1", cells[0]), strings.Join(cells[1:], " | "))
	}
}

func bar(v, max float64) string {
	if max <= 0 {
		return ""
	}
	n := int(math.Round(v / max * barWidth))
	if n == 0 && v > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
