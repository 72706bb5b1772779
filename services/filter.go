package services

import (
	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

// Filterer narrows the Book Table to a user selection.
type Filterer interface {
	Filter(table models.BookTable, sel models.Selection) models.BookTable
}

// SelectionFilter keeps rows whose year and genre are both selected.
type SelectionFilter struct {
	logger *utils.Logger
}

func NewSelectionFilter(logger *utils.Logger) *SelectionFilter {
	return &SelectionFilter{logger: logger}
}

// Filter returns a new table with the matching rows in source order.
// An empty year or genre set matches nothing; callers are expected to stop
// at CheckSelection before getting here.
func (f *SelectionFilter) Filter(table models.BookTable, sel models.Selection) models.BookTable {
	out := FilterBooks(table, sel)
	f.logger.Debug("[filter] %d of %d rows match %d year(s) and %d genre(s)",
		out.Len(), table.Len(), len(sel.Years), len(sel.Genres))
	return out
}

// FilterBooks applies year ∈ years AND genre ∈ genres. Row order is preserved.
func FilterBooks(table models.BookTable, sel models.Selection) models.BookTable {
	years := utils.NewSet(sel.Years...)
	genres := utils.NewSet(sel.Genres...)

	books := make([]models.Book, 0, table.Len())
	for _, b := range table.Books {
		if years.Contains(b.Year) && genres.Contains(b.Genre) {
			books = append(books, b)
		}
	}
	return models.BookTable{Books: books}
}

// CheckSelection returns a warning when the selection cannot be rendered.
// Years are checked before genres.
func CheckSelection(sel models.Selection) *models.SelectionWarning {
	if len(sel.Years) == 0 {
		return &models.SelectionWarning{
			Field:   "year",
			Message: "Please select at least one year in the sidebar.",
		}
	}
	if len(sel.Genres) == 0 {
		return &models.SelectionWarning{
			Field:   "genre",
			Message: "Please select at least one genre in the sidebar.",
		}
	}
	return nil
}

// SelectionOptions lists the values the year and genre inputs may offer.
type SelectionOptions struct {
	Years  []int    `json:"years"`
	Genres []string `json:"genres"`
}

// Options returns every year (ascending) and genre (first-seen) in the table.
// Both inputs default to selecting all of them.
func Options(table models.BookTable) SelectionOptions {
	return SelectionOptions{Years: table.Years(), Genres: table.Genres()}
}
