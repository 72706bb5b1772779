package services

import (
	"errors"
	"math"
	"testing"

	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

func newTestService() *AggregationService { return NewAggregationService(utils.Discard()) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScenarioTwoBooks(t *testing.T) {
	svc := newTestService()
	sel := models.Selection{Years: []int{2016}, Genres: []string{"Fiction", "Non Fiction"}}
	filtered := FilterBooks(scenarioTable(), sel)

	if filtered.Len() != 2 {
		t.Fatalf("filtered rows: got %d, want 2", filtered.Len())
	}

	counts := svc.CategoryCount(filtered)
	if len(counts) != 2 || counts[0] != (models.CategoryCount{Category: "Fiction", Count: 1}) ||
		counts[1] != (models.CategoryCount{Category: "Non Fiction", Count: 1}) {
		t.Errorf("CategoryCount: got %+v", counts)
	}

	means := svc.MeanByCategory(filtered, MeasurePrice)
	if len(means) != 2 || means[0].Category != "Fiction" || means[0].Mean != 10.0 ||
		means[1].Category != "Non Fiction" || means[1].Mean != 8.0 {
		t.Errorf("MeanByCategory: got %+v", means)
	}

	top := svc.TopBy(filtered, MeasureRating, 1)
	if len(top) != 1 || top[0].Genre != "Fiction" {
		t.Errorf("TopBy rating: got %+v", top)
	}
}

func TestCategoryCountSumsToRows(t *testing.T) {
	table := sampleTable()
	counts := newTestService().CategoryCount(table)

	total := 0
	for i, c := range counts {
		total += c.Count
		if i > 0 && counts[i-1].Count < c.Count {
			t.Errorf("counts not descending at %d: %+v", i, counts)
		}
	}
	if total != table.Len() {
		t.Errorf("sum of counts: got %d, want %d", total, table.Len())
	}
}

func TestCategoryCountTiesKeepFirstSeen(t *testing.T) {
	counts := newTestService().CategoryCount(scenarioTable())
	if counts[0].Category != "Fiction" {
		t.Errorf("tie order: got %+v", counts)
	}
}

func TestMeanByCategoryWithinRange(t *testing.T) {
	tenCents := models.NewBookTable([]models.Book{
		{Title: "A", Author: "X", Rating: 4.1, Reviews: 1, Price: 0.1, Year: 2010, Genre: "Fiction"},
		{Title: "B", Author: "X", Rating: 4.1, Reviews: 1, Price: 0.1, Year: 2011, Genre: "Fiction"},
		{Title: "C", Author: "X", Rating: 4.1, Reviews: 1, Price: 0.1, Year: 2012, Genre: "Fiction"},
		{Title: "D", Author: "Y", Rating: 4.7, Reviews: 1, Price: 0.3, Year: 2012, Genre: "Non Fiction"},
		{Title: "E", Author: "Y", Rating: 4.7, Reviews: 1, Price: 0.7, Year: 2012, Genre: "Non Fiction"},
	})
	for _, table := range []models.BookTable{sampleTable(), tenCents} {
		assertMeansWithinRange(t, table)
	}
}

func TestSummaryMeanOfIdenticalValues(t *testing.T) {
	table := models.NewBookTable([]models.Book{
		{Title: "A", Author: "X", Rating: 4.1, Reviews: 1, Price: 0.1, Year: 2010, Genre: "Fiction"},
		{Title: "B", Author: "X", Rating: 4.1, Reviews: 1, Price: 0.1, Year: 2011, Genre: "Fiction"},
		{Title: "C", Author: "X", Rating: 4.1, Reviews: 1, Price: 0.1, Year: 2012, Genre: "Fiction"},
	})
	summary, err := newTestService().Summary(table)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.MeanPrice != 0.1 || summary.MeanRating != 4.1 {
		t.Errorf("means drifted: price %.20f rating %.20f", summary.MeanPrice, summary.MeanRating)
	}
}

func assertMeansWithinRange(t *testing.T, table models.BookTable) {
	t.Helper()
	means := newTestService().MeanByCategory(table, MeasurePrice)

	for _, m := range means {
		lo, hi := 1e18, -1e18
		for _, b := range table.Books {
			if b.Genre != m.Category {
				continue
			}
			if b.Price < lo {
				lo = b.Price
			}
			if b.Price > hi {
				hi = b.Price
			}
		}
		if m.Mean < lo || m.Mean > hi {
			t.Errorf("%s mean %.20f outside [%.20f, %.20f]", m.Category, m.Mean, lo, hi)
		}
	}
}

func TestTopByProperties(t *testing.T) {
	svc := newTestService()
	table := sampleTable()

	for _, m := range []Measure{MeasureRating, MeasureReviews, MeasurePrice} {
		top := svc.TopBy(table, m, TopBooksN)
		if len(top) > TopBooksN {
			t.Errorf("%s: got %d rows, max %d", m, len(top), TopBooksN)
		}
		seen := map[string]bool{}
		for i, b := range top {
			if seen[b.Title] {
				t.Errorf("%s: title %q repeated", m, b.Title)
			}
			seen[b.Title] = true
			if i > 0 && m.value(top[i-1]) < m.value(b) {
				t.Errorf("%s: not non-increasing at %d", m, i)
			}
		}
	}
}

func TestTopByRatingBreaksTiesOnReviews(t *testing.T) {
	top := newTestService().TopBy(sampleTable(), MeasureRating, TopBooksN)

	want := []string{"Becoming", "Wonder", "The Help", "Diary of a Wimpy Kid", "Dog Days"}
	if len(top) != len(want) {
		t.Fatalf("len: got %d, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i].Title != want[i] {
			t.Errorf("top[%d]: got %q, want %q", i, top[i].Title, want[i])
		}
	}
}

func TestTopByKeepsFirstDuplicateAfterSort(t *testing.T) {
	table := models.BookTable{Books: []models.Book{
		{Title: "Same", Reviews: 10, Year: 2010, Genre: "Fiction"},
		{Title: "Same", Reviews: 30, Year: 2011, Genre: "Fiction"},
		{Title: "Other", Reviews: 20, Year: 2012, Genre: "Fiction"},
	}}

	top := newTestService().TopBy(table, MeasureReviews, 5)
	if len(top) != 2 || top[0].Year != 2011 || top[1].Title != "Other" {
		t.Errorf("got %+v", top)
	}
}

func TestTopAuthors(t *testing.T) {
	authors := newTestService().TopAuthors(sampleTable(), 2)
	if len(authors) != 2 {
		t.Fatalf("len: got %d, want 2", len(authors))
	}
	// Both have two rows; Palacio is seen first.
	if authors[0].Category != "R. J. Palacio" || authors[1].Category != "Jeff Kinney" {
		t.Errorf("got %+v", authors)
	}
}

func TestYearlyTrendAscending(t *testing.T) {
	trend := newTestService().YearlyTrend(sampleTable())

	want := []models.YearCount{{Year: 2009, Count: 3}, {Year: 2010, Count: 1}, {Year: 2013, Count: 2}, {Year: 2014, Count: 2}, {Year: 2018, Count: 2}}
	if len(trend) != len(want) {
		t.Fatalf("len: got %d, want %d", len(trend), len(want))
	}
	for i := range want {
		if trend[i] != want[i] {
			t.Errorf("trend[%d]: got %+v, want %+v", i, trend[i], want[i])
		}
	}
}

func TestPriceSpread(t *testing.T) {
	spreads := newTestService().PriceSpread(scenarioTable())
	if len(spreads) != 2 {
		t.Fatalf("len: got %d", len(spreads))
	}
	f := spreads[0]
	if f.Category != "Fiction" || f.Min != 10 || f.Median != 10 || f.Max != 10 || f.Count != 1 {
		t.Errorf("Fiction spread: %+v", f)
	}
	if f.Density != nil {
		t.Error("single value should have no density curve")
	}

	nf := newTestService().PriceSpread(sampleTable())[1]
	// Non Fiction prices sorted: 11, 15, 17, 46.
	if nf.Q1 != 14 || nf.Median != 16 || nf.Q3 != 24.25 {
		t.Errorf("Non Fiction quartiles: %+v", nf)
	}
	if len(nf.Density) != densityPoints {
		t.Errorf("density points: got %d", len(nf.Density))
	}
}

func TestCorrelationIsUnaggregated(t *testing.T) {
	table := sampleTable()
	points := newTestService().Correlation(table)
	if len(points) != table.Len() {
		t.Fatalf("points: got %d, want %d", len(points), table.Len())
	}
	if points[1].Title != "Becoming" || points[1].Reviews != 61133 || points[1].Price != 11 {
		t.Errorf("point 1: %+v", points[1])
	}
}

func TestSummary(t *testing.T) {
	s, err := newTestService().Summary(scenarioTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(s.MeanRating, 4.7) || !approx(s.MeanReviews, 300) || !approx(s.MeanPrice, 9) {
		t.Errorf("means: %+v", s)
	}
	if s.TopBook.Title != "Fiction Book" {
		t.Errorf("top book: got %q", s.TopBook.Title)
	}
}

func TestZeroRowAggregations(t *testing.T) {
	svc := newTestService()
	empty := models.BookTable{}

	if got := svc.CategoryCount(empty); len(got) != 0 {
		t.Errorf("CategoryCount: %+v", got)
	}
	if got := svc.RatingDistribution(empty); len(got) != 0 {
		t.Errorf("RatingDistribution: %+v", got)
	}
	if got := svc.MeanByCategory(empty, MeasurePrice); len(got) != 0 {
		t.Errorf("MeanByCategory: %+v", got)
	}
	if got := svc.PriceSpread(empty); len(got) != 0 {
		t.Errorf("PriceSpread: %+v", got)
	}
	if got := svc.TopBy(empty, MeasureRating, 5); len(got) != 0 {
		t.Errorf("TopBy: %+v", got)
	}
	if got := svc.TopAuthors(empty, 10); len(got) != 0 {
		t.Errorf("TopAuthors: %+v", got)
	}
	if got := svc.YearlyTrend(empty); len(got) != 0 {
		t.Errorf("YearlyTrend: %+v", got)
	}
	if got := svc.Correlation(empty); len(got) != 0 {
		t.Errorf("Correlation: %+v", got)
	}

	_, err := svc.Summary(empty)
	if !errors.Is(err, models.ErrEmptyAggregate) {
		t.Errorf("Summary: expected ErrEmptyAggregate, got %v", err)
	}
}
