package models

// Section kinds.
const (
	KindChart     = "chart"
	KindTable     = "table"
	KindNarrative = "narrative"
)

// Chart types.
const (
	ChartBar       = "bar"
	ChartHistogram = "histogram"
	ChartViolin    = "violin"
	ChartScatter   = "scatter"
)

// DashboardView is the full result of one interaction: either a warning or
// the ordered list of rendered sections.
type DashboardView struct {
	Selection Selection         `json:"selection"`
	RowCount  int               `json:"row_count"`
	Warning   *SelectionWarning `json:"warning,omitempty"`
	Sections  []Section         `json:"sections"`
}

// Section holds exactly one chart, table or narrative block.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Kind      string     `json:"kind"`
	Empty     bool       `json:"empty"`
	Chart     *ChartSpec `json:"chart,omitempty"`
	Table     *TableSpec `json:"table,omitempty"`
	Narrative *Narrative `json:"narrative,omitempty"`
}

// ChartSpec describes a chart for an external display surface.
type ChartSpec struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	XAxis     string         `json:"x_axis"`
	YAxis     string         `json:"y_axis"`
	ColorAxis string         `json:"color_axis,omitempty"`
	Points    []ChartPoint   `json:"points,omitempty"`
	Bins      []HistogramBin `json:"bins,omitempty"`
	Curve     []CurvePoint   `json:"curve,omitempty"`
	Violins   []Spread       `json:"violins,omitempty"`
	Scatter   []ScatterPoint `json:"scatter,omitempty"`
}

// ChartPoint is a labelled bar value with its display text.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// ScatterPoint maps a third dimension to both colour and marker size.
type ScatterPoint struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Color float64  `json:"color"`
	Size  float64  `json:"size"`
	Hover []string `json:"hover"`
}

// TableSpec is a ranked table ready for display.
type TableSpec struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"`
}

// Narrative is a block of formatted text lines.
type Narrative struct {
	Lines      []string `json:"lines"`
	Conclusion string   `json:"conclusion,omitempty"`
}
