package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ramusita/chitgame/internal/api/apierr"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeJSON reads a JSON body, rejecting unknown fields and trailing data
func decodeJSON(w http.ResponseWriter, r *http.Request, into any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	if dec.More() {
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	return nil
}
