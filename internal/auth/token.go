package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/construsys/gestor/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalido é o único erro que Verify devolve. Assinatura ruim, token
// malformado e token expirado são indistinguíveis para quem chama: qualquer
// diferença vazaria para o cliente se um token é forjado ou apenas velho.
var ErrTokenInvalido = errors.New("token invalido")

// TokenService assina e verifica tokens de sessão com segredo do servidor (HS256).
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL padrão de emissão (7 dias quando vindo da config default).
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Mint assina uma cópia das claims com expiração; a entrada não é alterada.
// Só falha por erro de programação (segredo ausente); nunca falha com claims
// válidas.
func (s *TokenService) Mint(claims *domain.Claims, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt secret nao configurado")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	agora := s.now()
	payload := *claims
	payload.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(agora),
		ExpiresAt: jwt.NewNumericDate(agora.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &payload)
	assinado, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar token: %w", err)
	}
	return assinado, nil
}

// Verify valida assinatura e expiração. Claims decodificadas sem os campos
// obrigatórios também contam como token inválido.
func (s *TokenService) Verify(tokenStr string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !claims.Valido() {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
