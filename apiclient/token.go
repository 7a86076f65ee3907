package apiclient

import "context"

type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken always returns the same bearer token. An empty token omits
// the Authorization header.
type StaticToken string

func (s StaticToken) Token(context.Context) string {
	return string(s)
}

type tokenKey struct{}

// WithToken attaches a per-request bearer token, typically the one stored in
// the owner's session.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextToken prefers the token carried by the request context and falls
// back to Fallback.
type ContextToken struct {
	Fallback TokenSource
}

func (c ContextToken) Token(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok && tok != "" {
		return tok
	}
	if c.Fallback == nil {
		return ""
	}
	return c.Fallback.Token(ctx)
}
