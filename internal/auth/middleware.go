package auth

import (
	"net/http"
	"strings"

	"github.com/construsys/gestor/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// CookieSessao é o cookie HTTP-only que carrega o token assinado.
const CookieSessao = "auth_token"

// PaginaLogin é o destino do redirect de quem não tem sessão.
const PaginaLogin = "/auth/login"

// TokenVerifier é implementado pelo TokenService.
type TokenVerifier interface {
	Verify(tokenStr string) (*domain.Claims, error)
}

// prefixos/caminhos públicos: home, páginas de auth, login e verificação de
// sessão, além dos endpoints de infraestrutura.
func caminhoPublico(path string) bool {
	if path == "/" || path == "/health" || path == "/metrics" {
		return true
	}
	if strings.HasPrefix(path, "/auth") {
		return true
	}
	return path == "/api/auth/login" || path == "/api/auth/sessao"
}

// NewMiddleware roda em toda requisição: extrai o cookie, verifica o token e
// anexa as claims ao contexto. Sem sessão válida em caminho protegido,
// redireciona para o login.
//
// Qualquer erro de verificação degrada para "sem sessão" em vez de 500.
// O erro engolido fica observável via log estruturado e contador.
func NewMiddleware(v TokenVerifier, logger *zap.Logger, falhasToken prometheus.Counter) func(http.Handler) http.Handler {
	logger = logger.Named("sessao")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *domain.Claims

			if ck, err := r.Cookie(CookieSessao); err == nil && ck.Value != "" {
				decodificadas, err := v.Verify(ck.Value)
				if err != nil {
					logger.Warn("token rejeitado, seguindo sem sessao",
						zap.String("path", r.URL.Path),
						zap.Error(err))
					if falhasToken != nil {
						falhasToken.Inc()
					}
				} else {
					claims = decodificadas
				}
			}

			if claims == nil {
				if !caminhoPublico(r.URL.Path) {
					http.Redirect(w, r, PaginaLogin, http.StatusFound)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ComClaims(r.Context(), claims)))
		})
	}
}
