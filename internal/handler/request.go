package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/respond"
	"github.com/ofertemutare/ofertemutare/internal/service"
)

type RequestHandler struct {
	requestService *service.RequestService
	mediaService   *service.MediaService
	emailService   *service.EmailService
}

func NewRequestHandler(requestService *service.RequestService, mediaService *service.MediaService, emailService *service.EmailService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		mediaService:   mediaService,
		emailService:   emailService,
	}
}

type createRequestBody struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	FromCity      string `json:"fromCity"`
	ToCity        string `json:"toCity"`
	MoveDate      string `json:"moveDate"`
	Details       string `json:"details"`
}

type requestResponse struct {
	ID               string    `json:"id"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerPhone    string    `json:"customerPhone"`
	FromCity         string    `json:"fromCity"`
	ToCity           string    `json:"toCity"`
	MoveDate         string    `json:"moveDate,omitempty"`
	Details          string    `json:"details,omitempty"`
	MediaUploadToken *string   `json:"mediaUploadToken,omitempty"`
	Masked           bool      `json:"masked"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toRequestResponse(req *model.MovingRequest, masked bool) requestResponse {
	return requestResponse{
		ID:               req.ID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		FromCity:         req.FromCity,
		ToCity:           req.ToCity,
		MoveDate:         req.MoveDate,
		Details:          req.Details,
		MediaUploadToken: req.MediaUploadToken,
		Masked:           masked,
		CreatedAt:        req.CreatedAt,
	}
}

// Create stores a moving request for the caller and confirms it by email.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in createRequestBody
	if !decodeJSON(w, r, &in) {
		return
	}

	caller := ctxkeys.Caller(r.Context())
	req, err := h.requestService.Create(r.Context(), caller, service.CreateRequestParams{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		FromCity:      in.FromCity,
		ToCity:        in.ToCity,
		MoveDate:      in.MoveDate,
		Details:       in.Details,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The request exists either way; a failed confirmation is only logged.
	err = h.emailService.SendRequestReceivedEmail(r.Context(), req)
	if err != nil {
		slog.Error("failed to send request confirmation", "error", err, "request_id", req.ID)
	}

	respond.JSON(w, http.StatusCreated, toRequestResponse(req, false))
}

// Get shows a moving request; contact details are masked for non-owners.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, masked, err := h.requestService.ForCaller(r.Context(), ctxkeys.Caller(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toRequestResponse(req, masked))
}

// List returns the caller's own moving requests.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.requestService.ByCustomer(r.Context(), ctxkeys.Caller(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequestResponse(req, false))
	}
	respond.JSON(w, http.StatusOK, out)
}

type mediaResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toMediaResponses(media []*model.Media) []mediaResponse {
	out := make([]mediaResponse, 0, len(media))
	for _, m := range media {
		out = append(out, mediaResponse{
			ID:           m.ID,
			OriginalName: m.OriginalName,
			MimeType:     m.MimeType,
			Size:         m.Size,
			URL:          m.URL,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out
}

// Media lists the uploaded files of a request with temporary download links.
func (h *RequestHandler) Media(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	err = h.requestService.Authorize(ctxkeys.Caller(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	media, err := h.mediaService.List(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toMediaResponses(media))
}
