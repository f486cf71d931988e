// Package ingest turns the raw review exports and delimited reference files
// into tables and typed records.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"beer-reviews/models"
)

// labelSep separates a label from its value. Only the first occurrence on a
// line counts, so a value that itself contains ": " keeps it intact but a
// label that contains it is split early.
const labelSep = ": "

// maxLineBytes bounds a single review line; review texts run long.
const maxLineBytes = 16 << 20

// ParseReviews reads a review export made of blank-line separated blocks of
// "label: value" lines and returns one row per block. The feature count k is
// the number of distinct labels before the first repeat or the first blank
// line. Columns are the labels in first-appearance order.
func ParseReviews(r io.Reader) (models.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var labels, values []string
	firstBlank := -1
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			if firstBlank < 0 && len(labels) > 0 {
				firstBlank = len(labels)
			}
			continue
		}
		label, value := splitLine(line)
		labels = append(labels, label)
		values = append(values, value)
	}
	if err := sc.Err(); err != nil {
		return models.Table{}, fmt.Errorf("reviews: read: %w", err)
	}

	if len(values) == 0 {
		return models.Table{}, nil
	}

	k := featureCount(labels, firstBlank)
	if len(values)%k != 0 {
		return models.Table{}, &models.IncompleteRecordError{
			Lines:    len(values),
			Features: k,
			Row:      -1,
		}
	}

	columns := append([]string(nil), labels[:k]...)
	rows := make([][]string, 0, len(values)/k)
	for start := 0; start < len(values); start += k {
		for j := 0; j < k; j++ {
			if got := labels[start+j]; got != columns[j] {
				return models.Table{}, &models.IncompleteRecordError{
					Lines:    len(values),
					Features: k,
					Row:      start / k,
					Reason:   fmt.Sprintf("line %d has label %q, want %q", start+j+1, got, columns[j]),
				}
			}
		}
		rows = append(rows, append([]string(nil), values[start:start+k]...))
	}

	return models.Table{Columns: columns, Rows: rows}, nil
}

func splitLine(line string) (label, value string) {
	i := strings.Index(line, labelSep)
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+len(labelSep):]
}

// featureCount counts distinct labels from the start until a label repeats
// or the first block ends at firstBlank (-1 when there is no blank line).
func featureCount(labels []string, firstBlank int) int {
	seen := make(map[string]struct{}, len(labels))
	for i, l := range labels {
		if i == firstBlank {
			return i
		}
		if _, dup := seen[l]; dup {
			return i
		}
		seen[l] = struct{}{}
	}
	return len(labels)
}

// ReviewsFromTable converts a parsed review table into typed reviews from
// src. Every label in required must be a column; extra columns are ignored.
func ReviewsFromTable(t models.Table, src models.Source, required []string) ([]models.Review, error) {
	name := "reviews" + src.Suffix()
	if t.Len() == 0 {
		return nil, nil
	}
	cols, err := t.Select(name, required)
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(cols.Columns))
	for i, c := range cols.Columns {
		col[c] = i
	}
	get := func(row []string, label string) string {
		if i, ok := col[label]; ok {
			return row[i]
		}
		return ""
	}

	out := make([]models.Review, len(cols.Rows))
	for i, row := range cols.Rows {
		out[i] = models.Review{
			Source:      src,
			BeerName:    get(row, models.LabelBeerName),
			BeerID:      get(row, models.LabelBeerID),
			BreweryName: get(row, models.LabelBreweryName),
			BreweryID:   get(row, models.LabelBreweryID),
			Style:       get(row, models.LabelStyle),
			ABV:         get(row, models.LabelABV),
			Date:        get(row, models.LabelDate),
			UserName:    get(row, models.LabelUserName),
			UserID:      get(row, models.LabelUserID),
			Appearance:  get(row, models.LabelAppearance),
			Aroma:       get(row, models.LabelAroma),
			Palate:      get(row, models.LabelPalate),
			Taste:       get(row, models.LabelTaste),
			Overall:     get(row, models.LabelOverall),
			Rating:      get(row, models.LabelRating),
			Text:        get(row, models.LabelText),
		}
	}
	return out, nil
}
