package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/construsys/gestor/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var segredoTeste = []byte("segredo-de-teste-nao-usar-em-prod")

func claimsTeste() *domain.Claims {
	return &domain.Claims{
		UserID:     "u-1",
		Login:      "maria",
		Cargo:      domain.CargoStaff,
		Permissoes: []string{"clientes:visualizar", "obras:visualizar"},
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService(segredoTeste, 7*24*time.Hour)

	token, err := ts.Mint(claimsTeste(), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decodificadas, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", decodificadas.UserID)
	assert.Equal(t, "maria", decodificadas.Login)
	assert.Equal(t, domain.CargoStaff, decodificadas.Cargo)
	assert.Equal(t, []string{"clientes:visualizar", "obras:visualizar"}, decodificadas.Permissoes)
}

func TestTokenService_Expiracao(t *testing.T) {
	inicio := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ts := NewTokenService(segredoTeste, 7*24*time.Hour)
	ts.now = func() time.Time { return inicio }

	token, err := ts.Mint(claimsTeste(), 60*time.Second)
	require.NoError(t, err)

	// ainda dentro do TTL
	ts.now = func() time.Time { return inicio.Add(59 * time.Second) }
	_, err = ts.Verify(token)
	assert.NoError(t, err)

	// estritamente depois do TTL
	ts.now = func() time.Time { return inicio.Add(61 * time.Second) }
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestTokenService_AssinaturaAdulterada(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)

	token, err := ts.Mint(claimsTeste(), time.Hour)
	require.NoError(t, err)

	partes := strings.Split(token, ".")
	require.Len(t, partes, 3)

	// troca um único caractere do segmento de assinatura; 'a'↔'A' muda os
	// bits altos do sexteto, então os bytes decodificados sempre diferem
	assinatura := []byte(partes[2])
	for i := range assinatura {
		original := assinatura[i]
		if original == 'a' {
			assinatura[i] = 'A'
		} else {
			assinatura[i] = 'a'
		}
		adulterado := partes[0] + "." + partes[1] + "." + string(assinatura)

		_, err := ts.Verify(adulterado)
		assert.ErrorIs(t, err, ErrTokenInvalido, "posicao %d", i)

		assinatura[i] = original
	}
}

func TestTokenService_TokenMalformado(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)

	for _, token := range []string{"", "abc", "a.b.c", "x.y"} {
		_, err := ts.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalido)
	}
}

func TestTokenService_NaoAlteraClaimsDeEntrada(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)
	claims := claimsTeste()

	_, err := ts.Mint(claims, time.Hour)
	require.NoError(t, err)

	// a entrada fica intacta: expiração vive só na cópia assinada
	assert.Equal(t, jwt.RegisteredClaims{}, claims.RegisteredClaims)
}

func TestTokenService_SegredoAusente(t *testing.T) {
	ts := NewTokenService(nil, time.Hour)

	_, err := ts.Mint(claimsTeste(), time.Hour)
	assert.Error(t, err)
}

func TestTokenService_ClaimsIncompletas(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)

	// token bem assinado porém sem login: deve contar como inválido
	token, err := ts.Mint(&domain.Claims{UserID: "u-1", Cargo: domain.CargoStaff}, time.Hour)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}
