package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
	"github.com/construsys/gestor/internal/infra"
	"github.com/construsys/gestor/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AcessoHandler struct {
	service *service.AcessoService
	metrics *infra.Metrics
	logger  *zap.Logger
}

func NewAcessoHandler(s *service.AcessoService, metrics *infra.Metrics, logger *zap.Logger) *AcessoHandler {
	return &AcessoHandler{
		service: s,
		metrics: metrics,
		logger:  logger.Named("handler.acesso"),
	}
}

type acessoRequest struct {
	Recurso   string `json:"recurso"`
	RecursoID string `json:"recurso_id"`
}

type acessoOp func(ctx context.Context, claims *domain.Claims, usuarioID, recurso, recursoID string) error

// Conceder — POST /api/usuarios/{id}/acessos. Corpo {recurso, recurso_id}.
func (h *AcessoHandler) Conceder(w http.ResponseWriter, r *http.Request) {
	h.escrever(w, r, h.service.Conceder)
}

// Revogar — DELETE /api/usuarios/{id}/acessos. Mesmo corpo da concessão.
func (h *AcessoHandler) Revogar(w http.ResponseWriter, r *http.Request) {
	h.escrever(w, r, h.service.Revogar)
}

func (h *AcessoHandler) escrever(w http.ResponseWriter, r *http.Request, op acessoOp) {
	var req acessoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Recurso == "" || req.RecursoID == "" {
		respondErro(w, http.StatusBadRequest, "requisicao invalida")
		return
	}

	claims, _ := auth.ClaimsDoContexto(r.Context())
	usuarioID := chi.URLParam(r, "id")

	if err := op(r.Context(), claims, usuarioID, req.Recurso, req.RecursoID); err != nil {
		if errors.Is(err, service.ErrAcessoNegado) {
			h.metrics.AcessoNegado.WithLabelValues(auth.RecursoUsuarios).Inc()
			respondErro(w, http.StatusForbidden, "acesso negado")
			return
		}
		h.logger.Error("falha ao gravar acesso", zap.String("usuario", usuarioID), zap.Error(err))
		respondErro(w, http.StatusInternalServerError, "erro interno")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"sucesso": true})
}
