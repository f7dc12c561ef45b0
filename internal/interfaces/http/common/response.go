package common

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
)

// Header discriminates the two envelope shapes. A success header never
// carries err_code/err_msg and an error header never carries message; the
// two writer functions below are the only places an envelope is built, so
// the exclusivity cannot drift.
type Header struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ErrCode string `json:"err_code,omitempty"`
	ErrMsg  string `json:"err_msg,omitempty"`
}

// ListMeta is the pagination block attached to list responses.
type ListMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type envelope struct {
	Header Header    `json:"header"`
	Result any       `json:"result,omitempty"`
	Meta   *ListMeta `json:"meta,omitempty"`
}

// WriteSuccess emits a success envelope with result (nil meta for non-list
// operations).
func WriteSuccess(logger *log.Logger, w http.ResponseWriter, status int, message string, result any, meta *ListMeta) {
	writeJSON(logger, w, status, envelope{
		Header: Header{Success: true, Message: message},
		Result: result,
		Meta:   meta,
	})
}

// WriteError emits an error envelope. Unknown errors are normalized to the
// 0401 category so internal detail never reaches err_msg; the caller is
// expected to log the cause.
func WriteError(logger *log.Logger, w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	writeJSON(logger, w, appErr.HTTPStatus(), envelope{
		Header: Header{
			Success: false,
			ErrCode: string(appErr.Code),
			ErrMsg:  appErr.Message,
		},
	})
}

// writeJSON serializes payload to JSON with status and logs on failure.
func writeJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("failed to encode JSON response: %v", err)
	}
}
