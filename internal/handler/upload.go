package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ofertemutare/ofertemutare/internal/i18n"
	"github.com/ofertemutare/ofertemutare/internal/respond"
	"github.com/ofertemutare/ofertemutare/internal/service"
	"github.com/ofertemutare/ofertemutare/internal/validation"
)

const maxUploadMemory = 32 << 20 // parts above this spill to temp files

// maxUploadBody admits a full batch of files at their individual limits,
// plus room for multipart framing.
var maxUploadBody = validation.MaxBatchSize() + 1<<20

type UploadHandler struct {
	mediaService *service.MediaService
}

func NewUploadHandler(mediaService *service.MediaService) *UploadHandler {
	return &UploadHandler{
		mediaService: mediaService,
	}
}

type uploadResponse struct {
	OK    bool            `json:"ok"`
	Files []mediaResponse `json:"files"`
}

// Upload accepts the customer's photos and videos for the token's request
// and spends the token. Files are sent in the "files" form field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusBadRequest, i18n.T(r, i18n.UploadTooLarge))
			return
		}
		respond.Error(w, http.StatusBadRequest, i18n.T(r, i18n.InvalidBody))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	media, err := h.mediaService.Upload(r.Context(), r.PathValue("token"), r.MultipartForm.File["files"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, uploadResponse{
		OK:    true,
		Files: toMediaResponses(media),
	})
}
