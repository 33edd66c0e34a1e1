package api

import (
	"encoding/json"
	"net/http"

	"github.com/flowband/flowband/pkg/errors"
	"github.com/flowband/flowband/pkg/flow"
	"github.com/flowband/flowband/pkg/pipeline"
)

// renderRequest is the POST /v1/render body. Flows come either inline
// in records or from the input path/URL of the embedded options.
type renderRequest struct {
	pipeline.Options
	Records []renderRecord `json:"records,omitempty"`
}

type renderRecord struct {
	Left        string   `json:"left"`
	Right       string   `json:"right"`
	Weight      *float64 `json:"weight"`
	RightWeight *float64 `json:"rightWeight,omitempty"`
}

// renderResponse is returned when more than one format is requested.
// Artifact bytes are base64-encoded by encoding/json.
type renderResponse struct {
	Artifacts map[string][]byte `json:"artifacts"`
	Warnings  []string          `json:"warnings,omitempty"`
	Stats     pipeline.Stats    `json:"stats"`
}

// contentTypes maps formats to response content types for single-format requests.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}
	req.Logger = s.logger

	result, err := s.execute(r, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	if len(req.Formats) == 1 {
		format := req.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Artifacts: result.Artifacts,
		Warnings:  result.Layout.Warnings,
		Stats:     result.Stats,
	})
}

// execute runs the pipeline from either inline records or the input
// reference.
func (s *Server) execute(r *http.Request, req *renderRequest) (*pipeline.Result, error) {
	if len(req.Records) == 0 {
		if err := req.ValidateAndSetDefaults(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
		}
		return s.runner.Execute(r.Context(), req.Options)
	}

	// Inline records skip the load stage.
	recs := make(flow.Records, 0, len(req.Records))
	for _, rec := range req.Records {
		weight := 1.0
		if rec.Weight != nil {
			weight = *rec.Weight
		}
		out := flow.Record{Left: rec.Left, Right: rec.Right, Weight: weight}
		if rec.RightWeight != nil {
			out.RightWeight = *rec.RightWeight
		}
		recs = append(recs, out)
	}
	if err := recs.Validate(); err != nil {
		return nil, err
	}

	if err := req.ValidateForLayout(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	if err := req.ValidateForRender(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}

	l, err := s.runner.ComputeLayout(r.Context(), recs, req.Options)
	if err != nil {
		return nil, err
	}
	artifacts, err := s.runner.Render(r.Context(), l, req.Options)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{
		Layout:    l,
		Artifacts: artifacts,
		Stats: pipeline.Stats{
			RecordCount: len(recs),
			LeftCount:   len(recs.Labels(flow.SideLeft)),
			RightCount:  len(recs.Labels(flow.SideRight)),
		},
	}, nil
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLength, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidColumn,
		errors.ErrCodeLabelMismatch, errors.ErrCodeColorUnresolved:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
