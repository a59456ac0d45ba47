package auth

import (
	"context"

	"github.com/construsys/gestor/internal/domain"
)

type ctxKey int

const claimsKey ctxKey = iota

// ComClaims anexa as claims decodificadas ao contexto da requisição.
func ComClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsDoContexto recupera as claims; ok=false significa requisição anônima.
func ClaimsDoContexto(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}
