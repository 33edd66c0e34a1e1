package dataset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow"
)

// document is the JSON dataset shape: a single required records array.
//
//	{
//	  "records": [
//	    {"left": "A", "right": "X", "weight": 5}
//	  ]
//	}
type document struct {
	Records []record `json:"records"`
}

type record struct {
	Left        string   `json:"left"`
	Right       string   `json:"right"`
	Weight      *float64 `json:"weight"`
	RightWeight *float64 `json:"rightWeight,omitempty"`
}

// ReadJSON decodes flow records from a JSON dataset. A missing weight
// field defaults to 1; a missing rightWeight reuses the weight on both
// sides. ReadJSON does not close r.
func ReadJSON(r io.Reader) (flow.Records, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "cannot decode JSON dataset")
	}
	if len(doc.Records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "JSON dataset has no records")
	}

	recs := make(flow.Records, 0, len(doc.Records))
	for _, rec := range doc.Records {
		w := 1.0
		if rec.Weight != nil {
			w = *rec.Weight
		}
		out := flow.Record{Left: rec.Left, Right: rec.Right, Weight: w}
		if rec.RightWeight != nil {
			out.RightWeight = *rec.RightWeight
		}
		recs = append(recs, out)
	}

	if err := recs.Validate(); err != nil {
		return nil, err
	}
	return recs, nil
}

// LoadJSON reads the JSON dataset file at path and returns the decoded
// records.
func LoadJSON(path string) (flow.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes records as a JSON dataset to w, the inverse of
// [ReadJSON].
func WriteJSON(w io.Writer, recs flow.Records) error {
	doc := document{Records: make([]record, 0, len(recs))}
	for _, rec := range recs {
		weight := rec.Weight
		out := record{Left: rec.Left, Right: rec.Right, Weight: &weight}
		if rec.RightWeight > 0 {
			rw := rec.RightWeight
			out.RightWeight = &rw
		}
		doc.Records = append(doc.Records, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cannot encode JSON dataset")
	}
	return nil
}
