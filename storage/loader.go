package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

// Source column names, matched case-insensitively.
const (
	ColumnName    = "Name"
	ColumnAuthor  = "Author"
	ColumnRating  = "User Rating"
	ColumnReviews = "Reviews"
	ColumnPrice   = "Price"
	ColumnYear    = "Year"
	ColumnGenre   = "Genre"
)

// Columns lists the required columns in source order.
var Columns = []string{
	ColumnName, ColumnAuthor, ColumnRating, ColumnReviews, ColumnPrice, ColumnYear, ColumnGenre,
}

// Loader reads the bestseller dataset once and caches the table. The cache is
// reused until the file's size or modification time changes, or Invalidate is
// called. It is safe for concurrent use.
type Loader struct {
	path     string
	sep      rune
	encoding string
	logger   *utils.Logger
	validate *validator.Validate

	mu      sync.Mutex
	loaded  bool
	table   models.BookTable
	size    int64
	modTime time.Time
}

// NewLoader creates a Loader for the delimited file at path.
func NewLoader(path string, sep rune, encoding string, logger *utils.Logger) *Loader {
	return &Loader{
		path:     path,
		sep:      sep,
		encoding: encoding,
		logger:   logger,
		validate: newBookValidator(),
	}
}

// Path returns the dataset path.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the cached table, reading the file on first use or after it changed.
func (l *Loader) Load() (models.BookTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		return models.BookTable{}, models.DataLoad(l.path, err, "dataset not readable")
	}

	if l.loaded && info.Size() == l.size && info.ModTime().Equal(l.modTime) {
		l.logger.Debug("[loader] Cache hit for %s (%d rows)", l.path, l.table.Len())
		return l.table, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return models.BookTable{}, models.DataLoad(l.path, err, "open dataset")
	}
	defer f.Close()

	start := time.Now()
	table, err := decodeBooks(f, l.path, l.sep, l.encoding, l.validate)
	if err != nil {
		return models.BookTable{}, err
	}

	l.table = table
	l.size = info.Size()
	l.modTime = info.ModTime()
	l.loaded = true

	l.logger.Info("[loader] Loaded %d books from %s in %v", table.Len(), l.path, time.Since(start).Round(time.Millisecond))
	return table, nil
}

// Invalidate drops the cached table so the next Load re-reads the file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		l.logger.Info("[loader] Cache invalidated for %s", l.path)
	}
	l.loaded = false
	l.table = models.BookTable{}
}

// DecodeBooks parses a delimited dataset from r. name is only used in error messages.
func DecodeBooks(r io.Reader, name string, sep rune, encoding string) (models.BookTable, error) {
	return decodeBooks(r, name, sep, encoding, newBookValidator())
}

func decodeBooks(r io.Reader, name string, sep rune, encoding string, v *validator.Validate) (models.BookTable, error) {
	src, strictUTF8, err := decodingReader(r, encoding)
	if err != nil {
		return models.BookTable{}, models.DataLoad(name, err, "unsupported encoding %q", encoding)
	}

	reader := csv.NewReader(src)
	reader.Comma = sep
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return models.BookTable{}, models.DataLoad(name, nil, "empty file, no header row")
	}
	if err != nil {
		return models.BookTable{}, models.DataLoad(name, err, "read header")
	}
	if strictUTF8 && !validUTF8(headers) {
		return models.BookTable{}, models.DataLoad(name, nil, "line 1: invalid UTF-8")
	}

	idx, err := indexColumns(headers)
	if err != nil {
		return models.BookTable{}, models.DataLoad(name, nil, "%s", err)
	}

	var books []models.Book
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return models.BookTable{}, models.DataLoad(name, perr.Err, "line %d: malformed row", perr.Line)
			}
			return models.BookTable{}, models.DataLoad(name, err, "read row")
		}

		line, _ := reader.FieldPos(0)
		if strictUTF8 && !validUTF8(row) {
			return models.BookTable{}, models.DataLoad(name, nil, "line %d: invalid UTF-8", line)
		}

		book, err := parseBook(row, idx)
		if err != nil {
			return models.BookTable{}, models.DataLoad(name, nil, "line %d: %s", line, err)
		}
		if err := v.Struct(book); err != nil {
			return models.BookTable{}, models.DataLoad(name, nil, "line %d: %s", line, describeValidation(err))
		}

		books = append(books, book)
	}

	return models.BookTable{Books: books}, nil
}

// decodingReader wraps r with a decoder for the named encoding. UTF-8 input is
// passed through and validated per record instead.
func decodingReader(r io.Reader, encoding string) (io.Reader, bool, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return r, true, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, false, err
	}
	if enc == nil {
		return nil, false, fmt.Errorf("no decoder for %s", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), false, nil
}

func validUTF8(fields []string) bool {
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return false
		}
	}
	return true
}

type columnIndex map[string]int

func indexColumns(headers []string) (columnIndex, error) {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}

	idx := make(columnIndex, len(Columns))
	var missing []string
	for _, col := range Columns {
		i, ok := byName[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseBook(row []string, idx columnIndex) (models.Book, error) {
	cell := func(col string) string {
		return strings.TrimSpace(row[idx[col]])
	}

	rating, err := parseFinite(ColumnRating, cell(ColumnRating))
	if err != nil {
		return models.Book{}, err
	}
	reviews, err := strconv.Atoi(cell(ColumnReviews))
	if err != nil {
		return models.Book{}, fmt.Errorf("%s %q is not an integer", ColumnReviews, cell(ColumnReviews))
	}
	price, err := parseFinite(ColumnPrice, cell(ColumnPrice))
	if err != nil {
		return models.Book{}, err
	}
	year, err := strconv.Atoi(cell(ColumnYear))
	if err != nil {
		return models.Book{}, fmt.Errorf("%s %q is not an integer", ColumnYear, cell(ColumnYear))
	}

	return models.Book{
		Title:   cell(ColumnName),
		Author:  cell(ColumnAuthor),
		Rating:  rating,
		Reviews: reviews,
		Price:   price,
		Year:    year,
		Genre:   cell(ColumnGenre),
	}, nil
}

// parseFinite rejects NaN, infinities and values that overflow float64.
func parseFinite(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%s %q is not a finite number", col, s)
	}
	return v, nil
}

func newBookValidator() *validator.Validate {
	v := validator.New()

	// Report source-style field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s (got %v)", e.Field(), e.Param(), e.Value()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be <= %s (got %v)", e.Field(), e.Param(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
