package auth

import "context"

type tokenKey struct{}

// WithToken кладёт bearer-токен в контекст исходящих запросов
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext достаёт токен из контекста
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
