// Package httputil maps domain errors onto HTTP responses so handlers stay
// free of status-code tables.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "homevest/pkg/domain-errors"
)

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeValidationFailed:   http.StatusUnprocessableEntity,
	dErrors.CodePreconditionFailed: http.StatusConflict,
	dErrors.CodeNetworkError:       http.StatusBadGateway,
	dErrors.CodeServerRejected:     http.StatusBadGateway,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodeConflict:           http.StatusConflict,
	dErrors.CodeUnauthorized:       http.StatusUnauthorized,
	dErrors.CodeInternal:           http.StatusInternalServerError,
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError renders err as a JSON error response. Internal error details are
// never leaked to the client; other codes include the description.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := errorBody{Error: string(code)}
	var de *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &de) {
		body.Description = de.Description
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
