package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func servidorProtegido(t *testing.T, ts *TokenService) http.Handler {
	t.Helper()

	mw := NewMiddleware(ts, zap.NewNop(), nil)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsDoContexto(r.Context()); ok {
			w.Header().Set("X-Usuario", claims.UserID)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestMiddleware_SemCookieRedireciona(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)
	h := servidorProtegido(t, ts)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/resumo", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PaginaLogin, rec.Header().Get("Location"))
}

func TestMiddleware_CookieValidoPassa(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)
	h := servidorProtegido(t, ts)

	token, err := ts.Mint(claimsTeste(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/resumo", nil)
	req.AddCookie(&http.Cookie{Name: CookieSessao, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Header().Get("X-Usuario"))
}

func TestMiddleware_CookieInvalidoViraRedirect(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)
	h := servidorProtegido(t, ts)

	// token expirado: degrada para "sem sessão", nunca 500
	inicio := time.Now().Add(-48 * time.Hour)
	emissor := NewTokenService(segredoTeste, time.Hour)
	emissor.now = func() time.Time { return inicio }
	expirado, err := emissor.Mint(claimsTeste(), time.Hour)
	require.NoError(t, err)

	for _, valor := range []string{expirado, "lixo-qualquer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/obras", nil)
		req.AddCookie(&http.Cookie{Name: CookieSessao, Value: valor})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
	}
}

func TestMiddleware_CaminhosPublicos(t *testing.T) {
	ts := NewTokenService(segredoTeste, time.Hour)
	h := servidorProtegido(t, ts)

	publicos := []string{"/", "/auth/login", "/auth/registro", "/api/auth/login", "/api/auth/sessao", "/health", "/metrics"}
	for _, path := range publicos {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "caminho %s deveria ser publico", path)
	}

	// cookie inválido em caminho público também passa
	req := httptest.NewRequest(http.MethodGet, "/api/auth/sessao", nil)
	req.AddCookie(&http.Cookie{Name: CookieSessao, Value: "invalido"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
