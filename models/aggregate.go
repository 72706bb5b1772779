package models

// CategoryCount is one entry of a value-count result.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryMean is the mean of a numeric column over one category.
type CategoryMean struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
	Count    int     `json:"count"`
}

// YearCount is one entry of the yearly trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Spread summarises the distribution of a numeric column within one category.
type Spread struct {
	Category string       `json:"category"`
	Count    int          `json:"count"`
	Min      float64      `json:"min"`
	Q1       float64      `json:"q1"`
	Median   float64      `json:"median"`
	Q3       float64      `json:"q3"`
	Max      float64      `json:"max"`
	Density  []CurvePoint `json:"density,omitempty"`
}

// CorrelationPoint is one unaggregated row of the rating/review/price view.
type CorrelationPoint struct {
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
	Price   float64 `json:"price"`
	Title   string  `json:"name"`
	Author  string  `json:"author"`
}

// SummaryStats holds the figures interpolated into the dynamic narrative.
type SummaryStats struct {
	Count       int     `json:"count"`
	MeanRating  float64 `json:"mean_rating"`
	MeanReviews float64 `json:"mean_reviews"`
	MeanPrice   float64 `json:"mean_price"`
	TopBook     Book    `json:"top_book"`
}

// HistogramBin is a half-open [Start, End) bin; the last bin of a histogram is closed.
type HistogramBin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// CurvePoint is one sample of a smoothed density curve.
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
