package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

var errInvalidJSON = model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid request body")

// MessageResponse is returned by operations that have no resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// statusByCode maps domain error codes to HTTP status codes.
var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:         http.StatusBadRequest,
	model.ErrCodeUnauthenticated:     http.StatusUnauthorized,
	model.ErrCodeForbidden:           http.StatusForbidden,
	model.ErrCodeValidation:          http.StatusBadRequest,
	model.ErrCodeMissingFields:       http.StatusBadRequest,
	model.ErrCodeInvalidInput:        http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:     http.StatusBadRequest,
	model.ErrCodeInvalidPrice:        http.StatusBadRequest,
	model.ErrCodeInvalidStatus:       http.StatusBadRequest,
	model.ErrCodeEmptyCart:           http.StatusBadRequest,
	model.ErrCodeDuplicateItem:       http.StatusConflict,
	model.ErrCodeDuplicateOrder:      http.StatusConflict,
	model.ErrCodeInvalidTransition:   http.StatusConflict,
	model.ErrCodeNotCancellable:      http.StatusConflict,
	model.ErrCodeNotFound:            http.StatusNotFound,
	model.ErrCodeNotFoundOrForbidden: http.StatusNotFound,
	model.ErrCodeNothingUpdated:      http.StatusNotFound,
	model.ErrCodeUploadUnavailable:   http.StatusServiceUnavailable,
}

// statusFor returns the HTTP status for err.
func statusFor(err error) int {
	if status, ok := statusByCode[model.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes the error envelope for err. Domain errors are surfaced
// verbatim; anything else becomes an opaque internal error.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status := statusFor(err)

	var de *model.DomainError
	if status == http.StatusInternalServerError || !errors.As(err, &de) {
		logger.Error().Err(err).Int("status", http.StatusInternalServerError).Msg("handler error")
		writeErrorResponse(w, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error")
		return
	}

	logger.Debug().Str("code", de.Code).Int("status", status).Msg(de.Message)
	writeErrorResponse(w, status, de.Code, de.Message)
}

// writeErrorResponse writes the standard error envelope.
func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// authContext returns the identity resolved by the authentication middleware.
func authContext(r *http.Request) model.AuthContext {
	return auth.FromContext(r.Context())
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.Errorf(model.ErrInvalidInput, "%s must be an integer", name)
	}
	return v, nil
}
