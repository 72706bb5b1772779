package server

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestseller-dashboard/models"
)

func TestParseSelection(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name   string
		query  string
		years  []int
		genres []string
	}{
		{"absent means all", "", []int{2009, 2014, 2018}, []string{"Non Fiction", "Fiction"}},
		{"empty year", "year=", []int{}, []string{"Non Fiction", "Fiction"}},
		{"empty genre", "genre=", []int{2009, 2014, 2018}, []string{}},
		{"comma list", "year=2018,2009&genre=Fiction", []int{2018, 2009}, []string{"Fiction"}},
		{"repeated keys", "genre=Fiction&genre=Non+Fiction", []int{2009, 2014, 2018}, []string{"Fiction", "Non Fiction"}},
		{"form placeholder", "year=&year=2014", []int{2014}, []string{"Non Fiction", "Fiction"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			sel, err := ParseSelection(q, table)
			require.NoError(t, err)
			assert.Equal(t, tt.years, sel.Years)
			assert.Equal(t, tt.genres, sel.Genres)
		})
	}
}

func TestParseSelectionInvalidYear(t *testing.T) {
	_, err := ParseSelection(url.Values{"year": {"2019,abc"}}, sampleTable())

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrBadRequest))
}

func TestParseSelectionGenreWithComma(t *testing.T) {
	table := models.NewBookTable([]models.Book{
		{Title: "A", Author: "X", Rating: 4.5, Reviews: 1, Price: 1, Year: 2019, Genre: "Science, Technology"},
		{Title: "B", Author: "Y", Rating: 4.5, Reviews: 1, Price: 1, Year: 2019, Genre: "Fiction"},
	})

	tests := []struct {
		name   string
		query  string
		genres []string
	}{
		{"exact genre kept whole", "genre=Science%2C+Technology", []string{"Science, Technology"}},
		{"repeated with comma genre", "genre=Science%2C+Technology&genre=Fiction", []string{"Science, Technology", "Fiction"}},
		{"unknown value still split", "genre=Fiction,Poetry", []string{"Fiction", "Poetry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			sel, err := ParseSelection(q, table)
			require.NoError(t, err)
			assert.Equal(t, tt.genres, sel.Genres)
		})
	}
}
