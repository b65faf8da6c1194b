package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/repository"
	"github.com/ofertemutare/ofertemutare/internal/testutil"
)

func newRequestService(t *testing.T) *RequestService {
	t.Helper()
	database := testutil.NewDB(t)
	svc := NewRequestService(repository.NewMovingRequestRepository(database))
	svc.now = testutil.NewClock(t0).Now
	return svc
}

var customer = &model.Caller{ID: "customer-1", Email: "ion.popescu@example.com", Role: model.RoleCustomer}

func validParams() CreateRequestParams {
	return CreateRequestParams{
		CustomerName:  "Ion Popescu",
		CustomerPhone: "0722 123 456",
		FromCity:      "Cluj-Napoca",
		ToCity:        "București",
		MoveDate:      "2026-04-15",
		Details:       "Apartament 3 camere, etaj 4 fără lift",
	}
}

func TestRequestCreate(t *testing.T) {
	svc := newRequestService(t)

	req, err := svc.Create(context.Background(), customer, validParams())
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "customer-1", req.CustomerID)
	assert.Equal(t, "ion.popescu@example.com", req.CustomerEmail, "defaults to the caller's email")
	assert.True(t, req.CreatedAt.Equal(t0))
	assert.Nil(t, req.MediaUploadToken)

	loaded, err := svc.ByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.FromCity, loaded.FromCity)

	mine, err := svc.ByCustomer(context.Background(), customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, req.ID, mine[0].ID)
}

func TestRequestCreate_Validation(t *testing.T) {
	svc := newRequestService(t)

	tests := []struct {
		name   string
		modify func(p *CreateRequestParams)
		field  string
	}{
		{"missing name", func(p *CreateRequestParams) { p.CustomerName = "" }, "customerName"},
		{"bad phone", func(p *CreateRequestParams) { p.CustomerPhone = "12" }, "customerPhone"},
		{"missing origin", func(p *CreateRequestParams) { p.FromCity = " " }, "fromCity"},
		{"bad date", func(p *CreateRequestParams) { p.MoveDate = "15.04.2026" }, "moveDate"},
		{"bad email", func(p *CreateRequestParams) { p.CustomerEmail = "nope" }, "customerEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.modify(&p)
			_, err := svc.Create(context.Background(), customer, p)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRequestForCaller(t *testing.T) {
	svc := newRequestService(t)
	req, err := svc.Create(context.Background(), customer, validParams())
	require.NoError(t, err)

	got, masked, err := svc.ForCaller(context.Background(), customer, req.ID)
	require.NoError(t, err)
	assert.False(t, masked)
	assert.Equal(t, "Ion Popescu", got.CustomerName)

	admin := &model.Caller{ID: "admin-1", Role: model.RoleAdmin}
	_, masked, err = svc.ForCaller(context.Background(), admin, req.ID)
	require.NoError(t, err)
	assert.False(t, masked)

	company := &model.Caller{ID: "company-1", Role: model.RoleCompany}
	got, masked, err = svc.ForCaller(context.Background(), company, req.ID)
	require.NoError(t, err)
	assert.True(t, masked)
	assert.Equal(t, "Ion P.", got.CustomerName)
	assert.Equal(t, "io*********@example.com", got.CustomerEmail)
	assert.Equal(t, "0722 *** ***", got.CustomerPhone)
	assert.Nil(t, got.MediaUploadToken)

	_, _, err = svc.ForCaller(context.Background(), company, "missing")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRequestAuthorize(t *testing.T) {
	svc := newRequestService(t)
	req := &model.MovingRequest{ID: "r1", CustomerID: "customer-1"}

	assert.NoError(t, svc.Authorize(customer, req))
	assert.NoError(t, svc.Authorize(&model.Caller{ID: "x", Role: model.RoleAdmin}, req))
	assert.ErrorIs(t, svc.Authorize(&model.Caller{ID: "company-1", Role: model.RoleCompany}, req), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(nil, req), ErrForbidden)
}
