package emsapi

import "context"

type tokenKey struct{}

// WithToken returns a context carrying the auth token to attach to the
// requests made under it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenProvider supplies the credential attached to authenticated
// requests. The client takes it as a dependency instead of reaching
// into shared storage, so tests can substitute a fixed credential.
type TokenProvider interface {
	Token(ctx context.Context) (string, bool)
}

// ContextTokens resolves the token placed on the context by WithToken.
// The web layer stores the session's token there once the route guard
// has resolved it.
type ContextTokens struct{}

// Token returns the context token, if any.
func (ContextTokens) Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// StaticToken always returns the same credential.
type StaticToken string

// Token returns the fixed credential.
func (s StaticToken) Token(_ context.Context) (string, bool) {
	return string(s), s != ""
}
