package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/i18n"
	"github.com/ofertemutare/ofertemutare/internal/respond"
	"github.com/ofertemutare/ofertemutare/internal/service"
	"github.com/ofertemutare/ofertemutare/internal/validation"
)

// TokenErrorBody is returned when an upload token cannot be used.
type TokenErrorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// writeError maps service errors to status codes and localized messages.
// Anything unrecognized is logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(w, http.StatusBadRequest, validationMessage(r, verr))
	case errors.Is(err, service.ErrRequestNotFound):
		respond.Error(w, http.StatusNotFound, i18n.T(r, i18n.RequestNotFound))
	case errors.Is(err, service.ErrNoActiveToken):
		respond.Error(w, http.StatusNotFound, i18n.T(r, i18n.TokenNotFound))
	case errors.Is(err, service.ErrForbidden):
		respond.Error(w, http.StatusForbidden, i18n.T(r, i18n.Forbidden))
	case errors.Is(err, service.ErrTokenNotFound):
		respond.JSON(w, http.StatusNotFound, TokenErrorBody{Error: i18n.T(r, i18n.TokenNotFound), Reason: "not_found"})
	case errors.Is(err, service.ErrTokenUsed):
		respond.JSON(w, http.StatusConflict, TokenErrorBody{Error: i18n.T(r, i18n.TokenAlreadyUsed), Reason: "already_used"})
	case errors.Is(err, service.ErrTokenExpired):
		respond.JSON(w, http.StatusGone, TokenErrorBody{Error: i18n.T(r, i18n.TokenExpired), Reason: "expired"})
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.Pattern,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
		respond.Error(w, http.StatusInternalServerError, i18n.T(r, i18n.InternalError))
	}
}

func validationMessage(r *http.Request, verr *service.ValidationError) string {
	switch {
	case verr.Field == "requestId":
		return i18n.T(r, i18n.RequestIDRequired)
	case errors.Is(verr.Err, validation.ErrEmailRequired):
		return i18n.T(r, i18n.EmailRequired)
	case errors.Is(verr.Err, validation.ErrEmailInvalid), errors.Is(verr.Err, validation.ErrEmailTooLong):
		return i18n.T(r, i18n.EmailInvalid)
	case errors.Is(verr.Err, validation.ErrNoFiles):
		return i18n.T(r, i18n.UploadNoFiles)
	case verr.Field == "files":
		return fileMessage(r, verr.Err)
	default:
		return i18n.T(r, i18n.InvalidInput, verr.Field)
	}
}

// fileMessage localizes a rejected upload, naming the file but never
// echoing the validator's English text.
func fileMessage(r *http.Request, err error) string {
	var name string
	var ferr *validation.FileError
	if errors.As(err, &ferr) {
		name = ferr.Filename
	}

	switch {
	case errors.Is(err, validation.ErrTooManyFiles):
		return i18n.T(r, i18n.UploadTooManyFiles, validation.MaxMediaFiles)
	case errors.Is(err, validation.ErrFileTooLarge):
		return i18n.T(r, i18n.UploadFileTooLarge, name,
			validation.ImageConstraints.MaxSize>>20, validation.VideoConstraints.MaxSize>>20)
	case errors.Is(err, validation.ErrFileType), errors.Is(err, validation.ErrFileExtension):
		return i18n.T(r, i18n.UploadFileType, name)
	default:
		return i18n.T(r, i18n.UploadInvalidFiles, name)
	}
}
