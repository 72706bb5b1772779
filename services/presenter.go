package services

import (
	"fmt"
	"strconv"

	"bestseller-dashboard/models"
)

// Section identifiers, in render order.
const (
	SectionGenreDistribution  = "genre-distribution"
	SectionRatingDistribution = "rating-distribution"
	SectionMeanPrice          = "mean-price-by-genre"
	SectionPriceSpread        = "price-spread-by-genre"
	SectionTopRated           = "top-rated-books"
	SectionMostReviewed       = "most-reviewed-books"
	SectionYearlyTrend        = "yearly-trend"
	SectionTopAuthors         = "top-authors"
	SectionCorrelation        = "rating-review-price"
	SectionNarrative          = "filtered-interpretation"
	SectionConclusions        = "conclusions"
)

// NoDataMessage is shown in place of an artifact with nothing to draw.
const NoDataMessage = "No books match the current filter."

// Presenter maps Aggregate Results to display artifacts. Titles, axis labels
// and number formats are fixed here and never derived from data.
type Presenter struct{}

func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) GenreDistribution(counts []models.CategoryCount) models.Section {
	points := make([]models.ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, models.ChartPoint{Label: c.Category, Value: float64(c.Count), Text: FormatInt(c.Count)})
	}
	return chartSection(SectionGenreDistribution, "Books per Genre", &models.ChartSpec{
		Type:   models.ChartBar,
		Title:  "Number of Books per Genre",
		XAxis:  "Genre",
		YAxis:  "Number of Books",
		Points: points,
	}, len(points) == 0)
}

// RatingDistribution bins the ratings and overlays a density curve scaled to
// the count axis.
func (p *Presenter) RatingDistribution(ratings []float64) models.Section {
	spec := &models.ChartSpec{
		Type:  models.ChartHistogram,
		Title: "User Rating Distribution",
		XAxis: "Rating",
		YAxis: "Number of Books",
		Bins:  Histogram(ratings, histogramBins),
	}

	if len(spec.Bins) > 0 {
		lo, hi := spec.Bins[0].Start, spec.Bins[len(spec.Bins)-1].End
		width := spec.Bins[0].End - spec.Bins[0].Start
		curve := GaussianKDE(ratings, lo, hi, densityPoints)
		scale := float64(len(ratings)) * width
		for i := range curve {
			curve[i].Y *= scale
		}
		spec.Curve = curve
	}

	return chartSection(SectionRatingDistribution, "User Rating Distribution", spec, len(ratings) == 0)
}

func (p *Presenter) MeanPrice(means []models.CategoryMean) models.Section {
	points := make([]models.ChartPoint, 0, len(means))
	for _, m := range means {
		points = append(points, models.ChartPoint{Label: m.Category, Value: m.Mean, Text: FormatCurrency(m.Mean)})
	}
	return chartSection(SectionMeanPrice, "Average Price per Genre", &models.ChartSpec{
		Type:   models.ChartBar,
		Title:  "Average Book Price per Genre",
		XAxis:  "Genre",
		YAxis:  "Price (USD)",
		Points: points,
	}, len(points) == 0)
}

func (p *Presenter) PriceSpread(spreads []models.Spread) models.Section {
	return chartSection(SectionPriceSpread, "Book Price Distribution per Genre", &models.ChartSpec{
		Type:    models.ChartViolin,
		Title:   "Book Price Distribution by Genre",
		XAxis:   "Genre",
		YAxis:   "Book Price (USD)",
		Violins: spreads,
	}, len(spreads) == 0)
}

func (p *Presenter) TopRated(books []models.Book) models.Section {
	columns := []models.Column{
		{Key: "rank", Label: "#", Align: "right"},
		{Key: "name", Label: "Name", Align: "left"},
		{Key: "author", Label: "Author", Align: "left"},
		{Key: "user_rating", Label: "User Rating", Align: "right"},
		{Key: "reviews", Label: "Reviews", Align: "right"},
		{Key: "price", Label: "Price", Align: "right"},
	}
	rows := make([][]string, 0, len(books))
	for i, b := range books {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), b.Title, b.Author, FormatRating(b.Rating), FormatInt(b.Reviews), FormatCurrency(b.Price),
		})
	}
	return tableSection(SectionTopRated, "Highest Rated Books", columns, rows)
}

func (p *Presenter) MostReviewed(books []models.Book) models.Section {
	columns := []models.Column{
		{Key: "rank", Label: "#", Align: "right"},
		{Key: "name", Label: "Name", Align: "left"},
		{Key: "author", Label: "Author", Align: "left"},
		{Key: "reviews", Label: "Reviews", Align: "right"},
		{Key: "user_rating", Label: "User Rating", Align: "right"},
		{Key: "price", Label: "Price", Align: "right"},
	}
	rows := make([][]string, 0, len(books))
	for i, b := range books {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), b.Title, b.Author, FormatInt(b.Reviews), FormatRating(b.Rating), FormatCurrency(b.Price),
		})
	}
	return tableSection(SectionMostReviewed, "Most Reviewed Books", columns, rows)
}

func (p *Presenter) YearlyTrend(trend []models.YearCount) models.Section {
	points := make([]models.ChartPoint, 0, len(trend))
	for _, y := range trend {
		points = append(points, models.ChartPoint{Label: strconv.Itoa(y.Year), Value: float64(y.Count), Text: FormatInt(y.Count)})
	}
	return chartSection(SectionYearlyTrend, "Bestsellers per Year", &models.ChartSpec{
		Type:   models.ChartBar,
		Title:  "Number of Bestsellers per Year",
		XAxis:  "Year",
		YAxis:  "Number of Books",
		Points: points,
	}, len(points) == 0)
}

func (p *Presenter) TopAuthors(authors []models.CategoryCount) models.Section {
	points := make([]models.ChartPoint, 0, len(authors))
	for _, a := range authors {
		points = append(points, models.ChartPoint{Label: a.Category, Value: float64(a.Count), Text: FormatInt(a.Count)})
	}
	return chartSection(SectionTopAuthors, "Authors with the Most Bestsellers", &models.ChartSpec{
		Type:   models.ChartBar,
		Title:  fmt.Sprintf("Top %d Authors by Number of Bestsellers", TopAuthorsN),
		XAxis:  "Author",
		YAxis:  "Number of Books",
		Points: points,
	}, len(points) == 0)
}

// Correlation maps price to both marker colour and marker size.
func (p *Presenter) Correlation(points []models.CorrelationPoint) models.Section {
	scatter := make([]models.ScatterPoint, 0, len(points))
	for _, c := range points {
		scatter = append(scatter, models.ScatterPoint{
			X:     c.Rating,
			Y:     float64(c.Reviews),
			Color: c.Price,
			Size:  c.Price,
			Hover: []string{c.Title, c.Author, FormatCurrency(c.Price)},
		})
	}
	return chartSection(SectionCorrelation, "Rating, Reviews and Price", &models.ChartSpec{
		Type:      models.ChartScatter,
		Title:     "Rating vs. Number of Reviews vs. Book Price",
		XAxis:     "Rating",
		YAxis:     "Reviews",
		ColorAxis: "Book Price (USD)",
		Scatter:   scatter,
	}, len(scatter) == 0)
}

// Narrative interpolates the summary figures into the fixed template.
func (p *Presenter) Narrative(s models.SummaryStats) models.Section {
	top := s.TopBook
	return models.Section{
		ID:    SectionNarrative,
		Title: "Interpretation of the Filtered Data",
		Kind:  models.KindNarrative,
		Narrative: &models.Narrative{
			Lines: []string{
				fmt.Sprintf("Average book rating: %.2f", s.MeanRating),
				fmt.Sprintf("Average number of reviews: %s", FormatRounded(s.MeanReviews)),
				fmt.Sprintf("Average book price: %s", FormatCurrency(s.MeanPrice)),
				fmt.Sprintf("Most popular book right now: %s by %s", top.Title, top.Author),
				fmt.Sprintf("Rating: %s, Reviews: %s, Price: %s",
					strconv.FormatFloat(top.Rating, 'f', -1, 64), FormatInt(top.Reviews), FormatCurrency(top.Price)),
			},
			Conclusion: "Books with a high rating and many reviews tend to be popular, whatever their price.",
		},
	}
}

// NarrativeUnavailable replaces the narrative when no summary can be computed.
func (p *Presenter) NarrativeUnavailable() models.Section {
	return models.Section{
		ID:        SectionNarrative,
		Title:     "Interpretation of the Filtered Data",
		Kind:      models.KindNarrative,
		Empty:     true,
		Narrative: &models.Narrative{Lines: []string{NoDataMessage}},
	}
}

// Conclusions is the static closing block. It does not depend on the filter.
func (p *Presenter) Conclusions() models.Section {
	return models.Section{
		ID:    SectionConclusions,
		Title: "Conclusions",
		Kind:  models.KindNarrative,
		Narrative: &models.Narrative{
			Lines: []string{
				"Non Fiction titles outnumber Fiction titles.",
				"Most book prices fall between $5 and $20.",
				"Books rated above 4.8 often collect many reviews as well.",
				"Authors such as Jeff Kinney and Suzanne Collins are very prolific.",
				"Price and rating are not consistently correlated: cheap books can be very popular.",
			},
			Conclusion: "Bestsellers are driven by content quality and popularity more than by price.",
		},
	}
}

func chartSection(id, title string, spec *models.ChartSpec, empty bool) models.Section {
	return models.Section{ID: id, Title: title, Kind: models.KindChart, Empty: empty, Chart: spec}
}

func tableSection(id, title string, columns []models.Column, rows [][]string) models.Section {
	return models.Section{
		ID:    id,
		Title: title,
		Kind:  models.KindTable,
		Empty: len(rows) == 0,
		Table: &models.TableSpec{Title: title, Columns: columns, Rows: rows},
	}
}
