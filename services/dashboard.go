package services

import (
	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithFilterer replaces the default SelectionFilter.
func WithFilterer(f Filterer) Option {
	return func(d *Dashboard) { d.filter = f }
}

// WithAggregator replaces the default AggregationService.
func WithAggregator(a Aggregator) Option {
	return func(d *Dashboard) { d.agg = a }
}

// Dashboard runs one interaction: selection → filter → aggregations →
// presentation, always in the same order.
type Dashboard struct {
	logger  *utils.Logger
	filter  Filterer
	agg     Aggregator
	present *Presenter
}

func NewDashboard(logger *utils.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		logger:  logger,
		filter:  NewSelectionFilter(logger),
		agg:     NewAggregationService(logger),
		present: NewPresenter(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Build renders the dashboard for sel. An incomplete selection yields only a
// warning: nothing is filtered or aggregated.
func (d *Dashboard) Build(table models.BookTable, sel models.Selection) models.DashboardView {
	view := models.DashboardView{Selection: sel, Sections: []models.Section{}}

	if w := CheckSelection(sel); w != nil {
		d.logger.Warn("[dashboard] Selection incomplete (%s): nothing rendered", w.Field)
		view.Warning = w
		return view
	}

	filtered := d.filter.Filter(table, sel)
	view.RowCount = filtered.Len()

	emit := func(s models.Section) {
		view.Sections = append(view.Sections, s)
	}

	emit(d.present.GenreDistribution(d.agg.CategoryCount(filtered)))
	emit(d.present.RatingDistribution(d.agg.RatingDistribution(filtered)))
	emit(d.present.MeanPrice(d.agg.MeanByCategory(filtered, MeasurePrice)))
	emit(d.present.PriceSpread(d.agg.PriceSpread(filtered)))
	emit(d.present.TopRated(d.agg.TopBy(filtered, MeasureRating, TopBooksN)))
	emit(d.present.MostReviewed(d.agg.TopBy(filtered, MeasureReviews, TopBooksN)))
	emit(d.present.YearlyTrend(d.agg.YearlyTrend(filtered)))
	emit(d.present.TopAuthors(d.agg.TopAuthors(filtered, TopAuthorsN)))
	emit(d.present.Correlation(d.agg.Correlation(filtered)))

	if summary, err := d.agg.Summary(filtered); err != nil {
		d.logger.Debug("[dashboard] Narrative skipped: %v", err)
		emit(d.present.NarrativeUnavailable())
	} else {
		emit(d.present.Narrative(summary))
	}

	emit(d.present.Conclusions())

	d.logger.Debug("[dashboard] Rendered %d sections over %d rows", len(view.Sections), view.RowCount)
	return view
}
