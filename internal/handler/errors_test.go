package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertemutare/ofertemutare/internal/service"
	"github.com/ofertemutare/ofertemutare/internal/validation"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		reason  string
	}{
		{"request id", &service.ValidationError{Field: "requestId", Err: errors.New("required")}, http.StatusBadRequest, "The request id is required.", ""},
		{"email required", &service.ValidationError{Field: "customerEmail", Err: validation.ErrEmailRequired}, http.StatusBadRequest, "The email address is required.", ""},
		{"email invalid", &service.ValidationError{Field: "customerEmail", Err: validation.ErrEmailInvalid}, http.StatusBadRequest, "The email address is not valid.", ""},
		{"no files", &service.ValidationError{Field: "files", Err: validation.ErrNoFiles}, http.StatusBadRequest, "No files were selected.", ""},
		{"too many files", &service.ValidationError{Field: "files", Err: fmt.Errorf("%w: maximum is 20", validation.ErrTooManyFiles)}, http.StatusBadRequest, "You can upload at most 20 files at once.", ""},
		{"file too large", &service.ValidationError{Field: "files", Err: &validation.FileError{Filename: "hol.mp4", Err: fmt.Errorf("%w: maximum size is 100 MB", validation.ErrFileTooLarge)}}, http.StatusBadRequest, "File hol.mp4 is too large (maximum 20 MB for photos and 100 MB for videos).", ""},
		{"file type", &service.ValidationError{Field: "files", Err: &validation.FileError{Filename: "x.gif", Err: validation.ErrFileType}}, http.StatusBadRequest, "File x.gif is not a supported photo or video (JPG, PNG, WEBP, HEIC, MP4, MOV, WEBM).", ""},
		{"file unreadable", &service.ValidationError{Field: "files", Err: &validation.FileError{Filename: "x.png", Err: errors.New("failed to open file")}}, http.StatusBadRequest, "File rejected: x.png", ""},
		{"other field", &service.ValidationError{Field: "toCity", Err: errors.New("city is required")}, http.StatusBadRequest, "The submitted data is not valid: toCity", ""},
		{"request not found", service.ErrRequestNotFound, http.StatusNotFound, "The moving request was not found.", ""},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "You do not have access to this request.", ""},
		{"token not found", service.ErrTokenNotFound, http.StatusNotFound, "This upload link is not valid.", "not_found"},
		{"token used", service.ErrTokenUsed, http.StatusConflict, "This link has already been used. Your files were submitted.", "already_used"},
		{"token expired", service.ErrTokenExpired, http.StatusGone, "This link has expired. Please request a new one.", "expired"},
		{"store unavailable", fmt.Errorf("load: %w", service.ErrStoreUnavailable), http.StatusInternalServerError, "Something went wrong. Please try again.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept-Language", "en")
			rr := httptest.NewRecorder()

			writeError(rr, r, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.message, body["error"])
			assert.Equal(t, tt.reason, body["reason"])
		})
	}
}

func TestWriteError_FileReasonIsLocalized(t *testing.T) {
	err := &service.ValidationError{Field: "files", Err: &validation.FileError{Filename: "x.gif", Err: fmt.Errorf("%w (detected: image/gif)", validation.ErrFileType)}}

	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodPost, "/", nil), err)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Fișierul x.gif nu este o poză sau un video acceptat (JPG, PNG, WEBP, HEIC, MP4, MOV, WEBM).", body["error"])
	assert.NotContains(t, body["error"], "detected")
}

func TestWriteError_DefaultsToRomanian(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrTokenExpired)

	var body TokenErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Acest link a expirat. Cereți un link nou.", body.Error)
}
