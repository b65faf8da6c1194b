package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/i18n"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/respond"
	"github.com/ofertemutare/ofertemutare/internal/service"
)

const maxJSONBody = 64 << 10

type UploadTokenHandler struct {
	tokenService   *service.UploadTokenService
	requestService *service.RequestService
	emailService   *service.EmailService
}

func NewUploadTokenHandler(tokenService *service.UploadTokenService, requestService *service.RequestService, emailService *service.EmailService) *UploadTokenHandler {
	return &UploadTokenHandler{
		tokenService:   tokenService,
		requestService: requestService,
		emailService:   emailService,
	}
}

type issueRequest struct {
	RequestID     string `json:"requestId"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
}

type issueResponse struct {
	OK            bool      `json:"ok"`
	UploadToken   string    `json:"uploadToken"`
	UploadLink    string    `json:"uploadLink"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Issue creates an upload link for a moving request owned by the caller.
func (h *UploadTokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var in issueRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	in.RequestID = strings.TrimSpace(in.RequestID)

	// Empty ids fall through to Issue, which reports them as a validation error.
	if in.RequestID != "" {
		if _, ok := h.authorizedRequest(w, r, in.RequestID); !ok {
			return
		}
	}

	res, err := h.tokenService.Issue(r.Context(), service.IssueParams{
		RequestID:     in.RequestID,
		CustomerEmail: in.CustomerEmail,
		CustomerName:  in.CustomerName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, issueResponse{
		OK:            true,
		UploadToken:   res.UploadToken,
		UploadLink:    res.UploadLink,
		CustomerEmail: res.CustomerEmail,
		CustomerName:  res.CustomerName,
		ExpiresAt:     res.ExpiresAt,
	})
}

type validResponse struct {
	Valid         bool      `json:"valid"`
	RequestID     string    `json:"requestId"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type invalidResponse struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type validateErrorResponse struct {
	Error string `json:"error"`
	Valid bool   `json:"valid"`
}

// Validate tells the upload page whether a token can still be used.
// Used and expired tokens are a normal 200 answer; unknown ones are 404.
func (h *UploadTokenHandler) Validate(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		respond.JSON(w, http.StatusBadRequest, validateErrorResponse{Error: i18n.T(r, i18n.TokenMissing)})
		return
	}

	v, err := h.tokenService.Validate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	switch v.Status {
	case service.TokenValid:
		respond.JSON(w, http.StatusOK, validResponse{
			Valid:         true,
			RequestID:     v.RequestID,
			CustomerEmail: v.CustomerEmail,
			CustomerName:  v.CustomerName,
			ExpiresAt:     v.ExpiresAt,
		})
	case service.TokenAlreadyUsed:
		respond.JSON(w, http.StatusOK, invalidResponse{
			Reason:  v.Status.Reason(),
			Message: i18n.T(r, i18n.TokenAlreadyUsed),
		})
	case service.TokenExpired:
		respond.JSON(w, http.StatusOK, invalidResponse{
			Reason:  v.Status.Reason(),
			Message: i18n.T(r, i18n.TokenExpired),
		})
	default:
		respond.JSON(w, http.StatusNotFound, validateErrorResponse{Error: i18n.T(r, i18n.TokenNotFound)})
	}
}

type sendRequest struct {
	RequestID string `json:"requestId"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Send emails the request's active upload link to its customer.
func (h *UploadTokenHandler) Send(w http.ResponseWriter, r *http.Request) {
	var in sendRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	in.RequestID = strings.TrimSpace(in.RequestID)
	if in.RequestID == "" {
		respond.Error(w, http.StatusBadRequest, i18n.T(r, i18n.RequestIDRequired))
		return
	}

	req, ok := h.authorizedRequest(w, r, in.RequestID)
	if !ok {
		return
	}
	if req.MediaUploadToken == nil {
		writeError(w, r, service.ErrNoActiveToken)
		return
	}

	token := *req.MediaUploadToken
	v, err := h.tokenService.Validate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !v.Valid() {
		writeError(w, r, v.Status.Err())
		return
	}

	err = h.emailService.SendUploadLinkEmail(r.Context(), v.CustomerEmail, v.CustomerName, h.tokenService.UploadLink(token), v.ExpiresAt)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, okResponse{OK: true})
}

// authorizedRequest loads a moving request the caller owns (or any, for admins).
func (h *UploadTokenHandler) authorizedRequest(w http.ResponseWriter, r *http.Request, requestID string) (*model.MovingRequest, bool) {
	req, err := h.requestService.ByID(r.Context(), requestID)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	err = h.requestService.Authorize(ctxkeys.Caller(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return req, true
}

// decodeJSON reads a bounded JSON body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, i18n.T(r, i18n.InvalidBody))
		return false
	}
	return true
}
