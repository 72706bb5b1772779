package services

import (
	"sort"

	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

// Leaderboard sizes.
const (
	TopBooksN   = 5
	TopAuthorsN = 10
)

// Measure names a numeric column of a Book.
type Measure string

const (
	MeasureRating  Measure = "rating"
	MeasureReviews Measure = "reviews"
	MeasurePrice   Measure = "price"
)

func (m Measure) value(b models.Book) float64 {
	switch m {
	case MeasureRating:
		return b.Rating
	case MeasureReviews:
		return float64(b.Reviews)
	case MeasurePrice:
		return b.Price
	default:
		return 0
	}
}

// Aggregator computes every Aggregate Result the dashboard renders. Each
// method is a pure function of its input table and must tolerate zero rows.
type Aggregator interface {
	CategoryCount(t models.BookTable) []models.CategoryCount
	RatingDistribution(t models.BookTable) []float64
	MeanByCategory(t models.BookTable, m Measure) []models.CategoryMean
	PriceSpread(t models.BookTable) []models.Spread
	TopBy(t models.BookTable, m Measure, n int) []models.Book
	TopAuthors(t models.BookTable, n int) []models.CategoryCount
	YearlyTrend(t models.BookTable) []models.YearCount
	Correlation(t models.BookTable) []models.CorrelationPoint
	Summary(t models.BookTable) (models.SummaryStats, error)
}

// AggregationService is the default Aggregator.
type AggregationService struct {
	logger *utils.Logger
}

func NewAggregationService(logger *utils.Logger) *AggregationService {
	return &AggregationService{logger: logger}
}

// CategoryCount counts rows per genre, largest first; ties keep first-seen order.
func (s *AggregationService) CategoryCount(t models.BookTable) []models.CategoryCount {
	return countBy(t, func(b models.Book) string { return b.Genre })
}

// RatingDistribution returns every rating in row order.
func (s *AggregationService) RatingDistribution(t models.BookTable) []float64 {
	out := make([]float64, 0, t.Len())
	for _, b := range t.Books {
		out = append(out, b.Rating)
	}
	return out
}

// MeanByCategory averages m per genre, ordered by genre name. Genres without
// rows never appear.
func (s *AggregationService) MeanByCategory(t models.BookTable, m Measure) []models.CategoryMean {
	groups := make(map[string]*runningMean)
	for _, b := range t.Books {
		g, ok := groups[b.Genre]
		if !ok {
			g = &runningMean{}
			groups[b.Genre] = g
		}
		g.add(m.value(b))
	}

	out := make([]models.CategoryMean, 0, len(groups))
	for genre, g := range groups {
		out = append(out, models.CategoryMean{
			Category: genre,
			Mean:     g.value(),
			Count:    g.n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// PriceSpread summarises prices per genre, ordered by genre name.
func (s *AggregationService) PriceSpread(t models.BookTable) []models.Spread {
	prices := make(map[string][]float64)
	for _, b := range t.Books {
		prices[b.Genre] = append(prices[b.Genre], b.Price)
	}

	out := make([]models.Spread, 0, len(prices))
	for genre, values := range prices {
		sorted := sortedCopy(values)
		lo, hi := sorted[0], sorted[len(sorted)-1]
		out = append(out, models.Spread{
			Category: genre,
			Count:    len(sorted),
			Min:      lo,
			Q1:       quantile(sorted, 0.25),
			Median:   quantile(sorted, 0.5),
			Q3:       quantile(sorted, 0.75),
			Max:      hi,
			Density:  GaussianKDE(sorted, lo, hi, densityPoints),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TopBy sorts rows by m descending, drops repeated titles (the first one
// after sorting wins) and keeps the first n. Rating ties are broken by
// review count, descending; other ties keep row order.
func (s *AggregationService) TopBy(t models.BookTable, m Measure, n int) []models.Book {
	if n <= 0 || t.Len() == 0 {
		return []models.Book{}
	}

	sorted := make([]models.Book, t.Len())
	copy(sorted, t.Books)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := m.value(sorted[i]), m.value(sorted[j])
		if a != b {
			return a > b
		}
		if m == MeasureRating {
			return sorted[i].Reviews > sorted[j].Reviews
		}
		return false
	})

	seen := utils.NewSet[string]()
	out := make([]models.Book, 0, n)
	for _, b := range sorted {
		if !seen.Add(b.Title) {
			continue
		}
		out = append(out, b)
		if len(out) == n {
			break
		}
	}
	return out
}

// TopAuthors counts rows per author and keeps the n most frequent.
func (s *AggregationService) TopAuthors(t models.BookTable, n int) []models.CategoryCount {
	counts := countBy(t, func(b models.Book) string { return b.Author })
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// YearlyTrend counts rows per year in ascending year order.
func (s *AggregationService) YearlyTrend(t models.BookTable) []models.YearCount {
	counts := make(map[int]int)
	for _, b := range t.Books {
		counts[b.Year]++
	}

	out := make([]models.YearCount, 0, len(counts))
	for year, c := range counts {
		out = append(out, models.YearCount{Year: year, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Correlation returns one point per row, unaggregated.
func (s *AggregationService) Correlation(t models.BookTable) []models.CorrelationPoint {
	out := make([]models.CorrelationPoint, 0, t.Len())
	for _, b := range t.Books {
		out = append(out, models.CorrelationPoint{
			Rating:  b.Rating,
			Reviews: b.Reviews,
			Price:   b.Price,
			Title:   b.Title,
			Author:  b.Author,
		})
	}
	return out
}

// Summary computes the narrative figures. Means are undefined on zero rows,
// which is reported as an EmptyAggregate error.
func (s *AggregationService) Summary(t models.BookTable) (models.SummaryStats, error) {
	if t.Len() == 0 {
		return models.SummaryStats{}, models.EmptyAggregate("summary statistics")
	}

	var rating, reviews, price runningMean
	for _, b := range t.Books {
		rating.add(b.Rating)
		reviews.add(float64(b.Reviews))
		price.add(b.Price)
	}

	top := s.TopBy(t, MeasureRating, 1)
	s.logger.Debug("[aggregate] Summary over %d rows, top book %q", t.Len(), top[0].Title)

	return models.SummaryStats{
		Count:       t.Len(),
		MeanRating:  rating.value(),
		MeanReviews: reviews.value(),
		MeanPrice:   price.value(),
		TopBook:     top[0],
	}, nil
}

// countBy counts rows per key, largest count first; ties keep first-seen order.
func countBy(t models.BookTable, key func(models.Book) string) []models.CategoryCount {
	index := make(map[string]int)
	var out []models.CategoryCount
	for _, b := range t.Books {
		k := key(b)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.CategoryCount{Category: k})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if out == nil {
		out = []models.CategoryCount{}
	}
	return out
}
