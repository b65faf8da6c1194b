package handler

import (
	"net/http"
	"strconv"

	"github.com/ofertemutare/ofertemutare/internal/storage"
)

// MediaFileHandler serves objects from in-memory storage at the URLs it
// hands out. Only mounted when STORAGE_DRIVER=memory.
type MediaFileHandler struct {
	store *storage.MemoryStorage
}

func NewMediaFileHandler(store *storage.MemoryStorage) *MediaFileHandler {
	return &MediaFileHandler{store: store}
}

func (h *MediaFileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := h.store.Object(r.PathValue("path"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
