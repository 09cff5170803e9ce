package inspector

import (
	"net/http"

	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/json"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Data  any                      `json:"data,omitempty"`
	Error *apperrors.ErrorResponse `json:"error,omitempty"`
	Meta  Meta                     `json:"meta"`
}

// Meta carries request metadata.
type Meta struct {
	TraceID string `json:"traceId,omitempty"`
	Took    int64  `json:"took"`
}

func meta(r *http.Request) Meta {
	return Meta{TraceID: GetTraceID(r.Context()), Took: requestDuration(r.Context())}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"internal","code":"INTERNAL_ERROR","message":"encode failed"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, Response{Data: data, Meta: meta(r)})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := apperrors.ToResponse(err)
	writeJSON(w, apperrors.HTTPStatusOf(err), Response{Error: &resp, Meta: meta(r)})
}
