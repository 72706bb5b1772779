package models

import "sort"

// Book is one validated row of the bestseller dataset. Books are never
// mutated after the loader builds them.
type Book struct {
	Title   string  `json:"name" validate:"required"`
	Author  string  `json:"author" validate:"required"`
	Rating  float64 `json:"user_rating" validate:"gte=0,lte=5"`
	Reviews int     `json:"reviews" validate:"gte=0"`
	Price   float64 `json:"price" validate:"gte=0"`
	Year    int     `json:"year" validate:"gte=1900,lte=2100"`
	Genre   string  `json:"genre" validate:"required"`
}

// BookTable is an ordered, read-only collection of books. Derived tables
// share Book values but never the backing slice of their parent.
type BookTable struct {
	Books []Book
}

// NewBookTable copies books into a new table.
func NewBookTable(books []Book) BookTable {
	out := make([]Book, len(books))
	copy(out, books)
	return BookTable{Books: out}
}

// Len returns the number of rows.
func (t BookTable) Len() int { return len(t.Books) }

// Years returns the distinct years in ascending order.
func (t BookTable) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for _, b := range t.Books {
		if _, ok := seen[b.Year]; ok {
			continue
		}
		seen[b.Year] = struct{}{}
		years = append(years, b.Year)
	}
	sort.Ints(years)
	return years
}

// Genres returns the distinct genres in first-seen order.
func (t BookTable) Genres() []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, b := range t.Books {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		genres = append(genres, b.Genre)
	}
	return genres
}

// Selection is the user's year and genre choice. Either side may be empty,
// which the dashboard reports as a warning instead of rendering charts.
type Selection struct {
	Years  []int    `json:"years"`
	Genres []string `json:"genres"`
}

// DefaultSelection selects every year and genre present in the table.
func DefaultSelection(t BookTable) Selection {
	return Selection{Years: t.Years(), Genres: t.Genres()}
}
