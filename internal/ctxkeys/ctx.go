package ctxkeys

import (
	"context"

	"github.com/ofertemutare/ofertemutare/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	CallerKey    contextKey = "caller"
	ClientIPKey  contextKey = "client_ip"
	RequestIDKey contextKey = "request_id"
)

// Caller returns the verified bearer identity, or nil for anonymous calls.
func Caller(ctx context.Context) *model.Caller {
	caller, _ := ctx.Value(CallerKey).(*model.Caller)
	return caller
}

func WithCaller(ctx context.Context, caller *model.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(ClientIPKey).(string)
	return ip
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientIPKey, ip)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
