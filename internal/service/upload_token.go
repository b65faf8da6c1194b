package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ofertemutare/ofertemutare/internal/metrics"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/repository"
	"github.com/ofertemutare/ofertemutare/internal/validation"
)

// tokenBytes of entropy per upload token (hex encoded: twice as many chars).
const tokenBytes = 32

// TokenStatus is the outcome of validating an upload token.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenNotFound
	TokenAlreadyUsed
	TokenExpired
)

// Reason is the machine-readable form sent to clients.
func (s TokenStatus) Reason() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenAlreadyUsed:
		return "already_used"
	case TokenExpired:
		return "expired"
	default:
		return "not_found"
	}
}

func (s TokenStatus) String() string { return s.Reason() }

// Err maps a non-valid status to its sentinel error.
func (s TokenStatus) Err() error {
	switch s {
	case TokenValid:
		return nil
	case TokenAlreadyUsed:
		return ErrTokenUsed
	case TokenExpired:
		return ErrTokenExpired
	default:
		return ErrTokenNotFound
	}
}

type TokenValidation struct {
	Status TokenStatus

	// Set only when Status is TokenValid
	RequestID     string
	CustomerEmail string
	CustomerName  string
	ExpiresAt     time.Time
}

func (v *TokenValidation) Valid() bool {
	return v.Status == TokenValid
}

type IssueParams struct {
	RequestID     string
	CustomerEmail string
	CustomerName  string
}

type IssueResult struct {
	UploadToken   string
	UploadLink    string
	CustomerEmail string
	CustomerName  string
	ExpiresAt     time.Time
}

type UploadTokenService struct {
	tokenRepo repository.UploadTokenRepository
	appURL    string
	expiry    time.Duration
	now       func() time.Time
}

func NewUploadTokenService(tokenRepo repository.UploadTokenRepository, appURL string, expiry time.Duration) *UploadTokenService {
	return &UploadTokenService{
		tokenRepo: tokenRepo,
		appURL:    strings.TrimSuffix(appURL, "/"),
		expiry:    expiry,
		now:       time.Now,
	}
}

func (s *UploadTokenService) GenerateToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// UploadLink is the customer-facing page for a token.
func (s *UploadTokenService) UploadLink(token string) string {
	return fmt.Sprintf("%s/upload/%s", s.appURL, token)
}

// Issue creates a fresh upload token for a moving request and makes it the
// request's active one. Previously issued tokens stay valid until they
// expire or are used. No email is sent here.
func (s *UploadTokenService) Issue(ctx context.Context, p IssueParams) (*IssueResult, error) {
	requestID := strings.TrimSpace(p.RequestID)
	email := strings.TrimSpace(strings.ToLower(p.CustomerEmail))
	name := strings.TrimSpace(p.CustomerName)

	if requestID == "" {
		return nil, invalid("requestId", errors.New("request id is required"))
	}
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, invalid("customerEmail", err)
	}

	token, err := s.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now().UTC()
	record := &model.UploadToken{
		Token:         token,
		RequestID:     requestID,
		CustomerEmail: email,
		CustomerName:  name,
		UploadLink:    s.UploadLink(token),
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.expiry),
		Used:          false,
	}

	err = s.tokenRepo.CreateForRequest(ctx, record)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, storeErr("create upload token", err)
	}

	metrics.UploadTokensIssuedTotal.Inc()
	slog.Info("upload token issued", "request_id", requestID, "expires_at", record.ExpiresAt)

	return &IssueResult{
		UploadToken:   record.Token,
		UploadLink:    record.UploadLink,
		CustomerEmail: record.CustomerEmail,
		CustomerName:  record.CustomerName,
		ExpiresAt:     record.ExpiresAt,
	}, nil
}

// Validate reports whether token may be used for an upload right now.
// Unknown or malformed tokens are a TokenNotFound result, not an error;
// errors are reserved for store failures. Used state wins over expiry.
// Validate never mutates the token; consumers must go through Consume.
func (s *UploadTokenService) Validate(ctx context.Context, token string) (*TokenValidation, error) {
	result, err := s.validate(ctx, token)
	if err != nil {
		return nil, err
	}
	metrics.UploadTokenValidationsTotal.WithLabelValues(result.Status.Reason()).Inc()
	return result, nil
}

func (s *UploadTokenService) validate(ctx context.Context, token string) (*TokenValidation, error) {
	if !wellFormed(token) {
		return &TokenValidation{Status: TokenNotFound}, nil
	}

	t, err := s.tokenRepo.ByToken(ctx, token)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return &TokenValidation{Status: TokenNotFound}, nil
	}
	if err != nil {
		return nil, storeErr("load upload token", err)
	}

	if t.IsUsed() {
		return &TokenValidation{Status: TokenAlreadyUsed}, nil
	}
	if t.IsExpired(s.now()) {
		return &TokenValidation{Status: TokenExpired}, nil
	}

	return &TokenValidation{
		Status:        TokenValid,
		RequestID:     t.RequestID,
		CustomerEmail: t.CustomerEmail,
		CustomerName:  t.CustomerName,
		ExpiresAt:     t.ExpiresAt,
	}, nil
}

// Lookup returns the stored record regardless of its state.
func (s *UploadTokenService) Lookup(ctx context.Context, token string) (*model.UploadToken, error) {
	if !wellFormed(token) {
		return nil, ErrTokenNotFound
	}
	t, err := s.tokenRepo.ByToken(ctx, token)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, storeErr("load upload token", err)
	}
	return t, nil
}

// Consume marks the token used if, and only if, it is still unused and
// unexpired at this moment. onClaim runs in the same transaction.
// A concurrent loser gets ErrTokenUsed.
func (s *UploadTokenService) Consume(ctx context.Context, token string, onClaim repository.ClaimFunc) (*model.UploadToken, error) {
	if !wellFormed(token) {
		return nil, ErrTokenNotFound
	}

	t, err := s.tokenRepo.Consume(ctx, token, s.now(), onClaim)
	switch {
	case err == nil:
		slog.Info("upload token consumed", "request_id", t.RequestID)
		return t, nil
	case errors.Is(err, ErrTokenNotFound), errors.Is(err, ErrTokenUsed), errors.Is(err, ErrTokenExpired):
		return nil, err
	default:
		return nil, storeErr("consume upload token", err)
	}
}

func wellFormed(token string) bool {
	if len(token) != 2*tokenBytes {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
