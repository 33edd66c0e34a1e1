package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow"
)

// defaultWeightColumn is used when no weight column is named and the
// header contains it.
const defaultWeightColumn = "weight"

// Columns selects which CSV columns feed the flow records. Empty fields
// fall back to positional defaults: the first column is the left
// category, the second the right, and a column literally named "weight"
// (if present) supplies weights. Without a weight column every row
// counts as 1. RightWeight names an optional column of per-row right
// side weights; it is never picked up implicitly.
type Columns struct {
	Left        string
	Right       string
	Weight      string
	RightWeight string
}

// Header returns the column names of the CSV at path without reading
// the body. Used by interactive column selection.
func Header(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", path)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "cannot read CSV header from %s", path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, nil
}

// ReadCSV decodes flow records from CSV data. The first row must be a
// header. Rows with a weight column must parse as float64.
//
// ReadCSV does not close r.
func ReadCSV(r io.Reader, cols Columns) (flow.Records, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "cannot read CSV header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	leftIdx, rightIdx, weightIdx, rightWeightIdx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	var recs flow.Records
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "CSV line %d", line)
		}

		rec := flow.Record{
			Left:   strings.TrimSpace(row[leftIdx]),
			Right:  strings.TrimSpace(row[rightIdx]),
			Weight: 1.0,
		}
		if weightIdx >= 0 {
			w, err := strconv.ParseFloat(strings.TrimSpace(row[weightIdx]), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
					"CSV line %d: weight %q is not a number", line, row[weightIdx])
			}
			rec.Weight = w
		}
		if rightWeightIdx >= 0 {
			rw, err := strconv.ParseFloat(strings.TrimSpace(row[rightWeightIdx]), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
					"CSV line %d: right weight %q is not a number", line, row[rightWeightIdx])
			}
			rec.RightWeight = rw
		}
		recs = append(recs, rec)
	}

	if err := recs.Validate(); err != nil {
		return nil, err
	}
	return recs, nil
}

// LoadCSV reads the CSV file at path and returns the decoded records.
func LoadCSV(path string, cols Columns) (flow.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, cols)
}

func resolveColumns(header []string, cols Columns) (left, right, weight, rightWeight int, err error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(h, name) {
				return i
			}
		}
		return -1
	}

	left, right, weight, rightWeight = 0, 1, -1, -1

	if cols.Left != "" {
		if left = find(cols.Left); left < 0 {
			return 0, 0, 0, 0, columnError(cols.Left, header)
		}
	}
	if cols.Right != "" {
		if right = find(cols.Right); right < 0 {
			return 0, 0, 0, 0, columnError(cols.Right, header)
		}
	}
	switch {
	case cols.Weight != "":
		if weight = find(cols.Weight); weight < 0 {
			return 0, 0, 0, 0, columnError(cols.Weight, header)
		}
	default:
		weight = find(defaultWeightColumn)
	}
	if cols.RightWeight != "" {
		if rightWeight = find(cols.RightWeight); rightWeight < 0 {
			return 0, 0, 0, 0, columnError(cols.RightWeight, header)
		}
	}

	if len(header) < 2 || right >= len(header) {
		return 0, 0, 0, 0, errors.New(errors.ErrCodeInvalidFormat,
			"CSV needs at least two columns, header has %d", len(header))
	}
	return left, right, weight, rightWeight, nil
}

func columnError(name string, header []string) error {
	return errors.New(errors.ErrCodeInvalidColumn,
		"column %q not found in header [%s]", name, strings.Join(header, ", "))
}
