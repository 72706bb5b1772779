package server

import (
	"net/url"
	"strconv"
	"strings"

	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

// ParseSelection reads year and genre from the query string. An absent key
// selects every value in the table; a key present with no values selects none.
func ParseSelection(q url.Values, table models.BookTable) (models.Selection, error) {
	sel := models.DefaultSelection(table)

	if raw, ok := q["year"]; ok {
		years := []int{}
		for _, v := range splitValues(raw) {
			y, err := strconv.Atoi(v)
			if err != nil {
				return models.Selection{}, models.BadRequest("invalid year %q", v)
			}
			years = append(years, y)
		}
		sel.Years = years
	}

	if raw, ok := q["genre"]; ok {
		sel.Genres = genreValues(raw, table.Genres())
	}

	return sel, nil
}

// genreValues keeps a value whole when it names a known genre, so genres that
// contain commas stay selectable. Anything else is read as a comma list.
func genreValues(raw, known []string) []string {
	genres := utils.NewSet(known...)
	out := []string{}
	for _, r := range raw {
		if r = strings.TrimSpace(r); r == "" {
			continue
		}
		if genres.Contains(r) {
			out = append(out, r)
			continue
		}
		out = append(out, splitValues([]string{r})...)
	}
	return out
}

// splitValues accepts both repeated keys and comma-separated lists.
func splitValues(raw []string) []string {
	out := []string{}
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
