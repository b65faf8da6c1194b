package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ofertemutare/ofertemutare/internal/mask"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/repository"
	"github.com/ofertemutare/ofertemutare/internal/validation"
)

type RequestService struct {
	requestRepo repository.MovingRequestRepository
	now         func() time.Time
}

func NewRequestService(requestRepo repository.MovingRequestRepository) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		now:         time.Now,
	}
}

type CreateRequestParams struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	FromCity      string
	ToCity        string
	MoveDate      string
	Details       string
}

func (s *RequestService) Create(ctx context.Context, caller *model.Caller, p CreateRequestParams) (*model.MovingRequest, error) {
	req := &model.MovingRequest{
		ID:            uuid.New().String(),
		CustomerID:    caller.ID,
		CustomerName:  strings.TrimSpace(p.CustomerName),
		CustomerEmail: strings.TrimSpace(strings.ToLower(p.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(p.CustomerPhone),
		FromCity:      strings.TrimSpace(p.FromCity),
		ToCity:        strings.TrimSpace(p.ToCity),
		MoveDate:      strings.TrimSpace(p.MoveDate),
		Details:       strings.TrimSpace(p.Details),
		CreatedAt:     s.now().UTC(),
	}
	if req.CustomerEmail == "" {
		req.CustomerEmail = strings.ToLower(caller.Email)
	}

	err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.requestRepo.Create(ctx, req)
	if err != nil {
		return nil, storeErr("create moving request", err)
	}

	slog.Info("moving request created", "request_id", req.ID, "customer_id", req.CustomerID)
	return req, nil
}

func validateRequest(req *model.MovingRequest) error {
	if err := validation.ValidateName(req.CustomerName); err != nil {
		return invalid("customerName", err)
	}
	if err := validation.ValidateEmail(req.CustomerEmail); err != nil {
		return invalid("customerEmail", err)
	}
	if err := validation.ValidatePhone(req.CustomerPhone); err != nil {
		return invalid("customerPhone", err)
	}
	if err := validation.ValidateCity(req.FromCity); err != nil {
		return invalid("fromCity", err)
	}
	if err := validation.ValidateCity(req.ToCity); err != nil {
		return invalid("toCity", err)
	}
	if req.MoveDate != "" {
		if _, err := time.Parse(time.DateOnly, req.MoveDate); err != nil {
			return invalid("moveDate", errors.New("move date must be YYYY-MM-DD"))
		}
	}
	if len(req.Details) > 5000 {
		return invalid("details", errors.New("details are too long (max 5000 characters)"))
	}
	return nil
}

func (s *RequestService) ByID(ctx context.Context, id string) (*model.MovingRequest, error) {
	req, err := s.requestRepo.ByID(ctx, id)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, storeErr("load moving request", err)
	}
	return req, nil
}

func (s *RequestService) ByCustomer(ctx context.Context, caller *model.Caller) ([]*model.MovingRequest, error) {
	reqs, err := s.requestRepo.ByCustomer(ctx, caller.ID)
	if err != nil {
		return nil, storeErr("list moving requests", err)
	}
	return reqs, nil
}

// Authorize allows the request's owner and admins.
func (s *RequestService) Authorize(caller *model.Caller, req *model.MovingRequest) error {
	if caller == nil {
		return ErrForbidden
	}
	if caller.IsAdmin() || req.OwnedBy(caller.ID) {
		return nil
	}
	return ErrForbidden
}

// ForCaller loads a request as the caller may see it. Anyone other than
// the owner or an admin gets partially masked contact details and no
// upload token. The second result reports whether masking was applied.
func (s *RequestService) ForCaller(ctx context.Context, caller *model.Caller, id string) (*model.MovingRequest, bool, error) {
	req, err := s.ByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if s.Authorize(caller, req) == nil {
		return req, false, nil
	}

	masked := *req
	masked.CustomerName = mask.Name(req.CustomerName)
	masked.CustomerEmail = mask.Email(req.CustomerEmail)
	masked.CustomerPhone = mask.Phone(req.CustomerPhone)
	masked.MediaUploadToken = nil
	return &masked, true, nil
}
