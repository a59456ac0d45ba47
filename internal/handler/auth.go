package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
	"github.com/construsys/gestor/internal/infra"
	"github.com/construsys/gestor/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service      *service.AuthService
	tokenTTL     time.Duration
	cookieSecure bool
	metrics      *infra.Metrics
	logger       *zap.Logger
}

func NewAuthHandler(s *service.AuthService, tokenTTL time.Duration, cookieSecure bool, metrics *infra.Metrics, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:      s,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
		metrics:      metrics,
		logger:       logger.Named("handler.auth"),
	}
}

// Login — POST /api/auth/login. Aceita {login, senha}; no sucesso grava o
// cookie de sessão e devolve o perfil público.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErro(w, http.StatusBadRequest, "requisicao invalida")
		return
	}

	perfil, token, err := h.service.Autenticar(r.Context(), req, r.RemoteAddr, r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCamposObrigatorios):
			h.metrics.LoginTotal.WithLabelValues("validacao").Inc()
			respondErro(w, http.StatusBadRequest, "login e senha sao obrigatorios")
		case errors.Is(err, service.ErrCredenciaisInvalidas):
			// não revelamos se o login existe ou se a senha está errada
			h.metrics.LoginTotal.WithLabelValues("credenciais").Inc()
			respondErro(w, http.StatusUnauthorized, "credenciais invalidas")
		default:
			h.metrics.LoginTotal.WithLabelValues("erro").Inc()
			h.logger.Error("falha inesperada no login", zap.Error(err))
			respondErro(w, http.StatusInternalServerError, "erro interno")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieSessao,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.metrics.LoginTotal.WithLabelValues("sucesso").Inc()
	respondJSON(w, http.StatusOK, domain.LoginResponse{Sucesso: true, Usuario: perfil})
}

// Sessao — GET /api/auth/sessao. Reflete o estado do cookie decodificado pelo
// middleware; nunca é erro, apenas autenticado true/false.
func (h *AuthHandler) Sessao(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsDoContexto(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, domain.SessaoResponse{Autenticado: false})
		return
	}

	respondJSON(w, http.StatusOK, domain.SessaoResponse{
		Autenticado: true,
		Usuario: &domain.PerfilUsuario{
			ID:         claims.UserID,
			Login:      claims.Login,
			Cargo:      claims.Cargo,
			Permissoes: claims.Permissoes,
		},
	})
}

// Logout — POST /api/auth/logout. Destrói a sessão limpando o cookie;
// claims são imutáveis, então não há nada mais a invalidar aqui.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieSessao,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]bool{"sucesso": true})
}
