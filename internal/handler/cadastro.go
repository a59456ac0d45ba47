package handler

import (
	"errors"
	"net/http"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/infra"
	"github.com/construsys/gestor/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CadastroHandler struct {
	service   *service.CadastroService
	dashboard *service.DashboardService
	gate      *auth.Gate
	metrics   *infra.Metrics
	logger    *zap.Logger
}

func NewCadastroHandler(s *service.CadastroService, d *service.DashboardService, gate *auth.Gate, metrics *infra.Metrics, logger *zap.Logger) *CadastroHandler {
	return &CadastroHandler{
		service:   s,
		dashboard: d,
		gate:      gate,
		metrics:   metrics,
		logger:    logger.Named("handler.cadastro"),
	}
}

// ListarClientes — GET /api/clientes. Staff restrito enxerga só a allow-list.
func (h *CadastroHandler) ListarClientes(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsDoContexto(r.Context())
	clientes, err := h.service.ListarClientes(r.Context(), claims)
	if err != nil {
		h.respondeFalha(w, auth.RecursoClientes, err)
		return
	}
	respondJSON(w, http.StatusOK, clientes)
}

// GetCliente — GET /api/clientes/{id}.
func (h *CadastroHandler) GetCliente(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsDoContexto(r.Context())
	cliente, err := h.service.GetCliente(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		h.respondeFalha(w, auth.RecursoClientes, err)
		return
	}
	respondJSON(w, http.StatusOK, cliente)
}

// ListarObras — GET /api/obras.
func (h *CadastroHandler) ListarObras(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsDoContexto(r.Context())
	obras, err := h.service.ListarObras(r.Context(), claims)
	if err != nil {
		h.respondeFalha(w, auth.RecursoObras, err)
		return
	}
	respondJSON(w, http.StatusOK, obras)
}

// GetObra — GET /api/obras/{id}.
func (h *CadastroHandler) GetObra(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsDoContexto(r.Context())
	obra, err := h.service.GetObra(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		h.respondeFalha(w, auth.RecursoObras, err)
		return
	}
	respondJSON(w, http.StatusOK, obra)
}

// ListarPagamentos — GET /api/pagamentos. Permissão sem allow-list: a tabela
// marca pagamentos como irrestrito para staff.
func (h *CadastroHandler) ListarPagamentos(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsDoContexto(r.Context())
	if !h.gate.TemPermissao(claims, auth.RecursoPagamentos, auth.AcaoVisualizar) {
		h.respondeFalha(w, auth.RecursoPagamentos, service.ErrAcessoNegado)
		return
	}

	registros, err := h.dashboard.Registros(r.Context())
	if err != nil {
		h.respondeFalha(w, auth.RecursoPagamentos, err)
		return
	}
	respondJSON(w, http.StatusOK, registros)
}

// respondeFalha mapeia os erros do serviço em status. A negação é sempre o
// mesmo "acesso negado": nunca dizemos qual permissão faltou.
func (h *CadastroHandler) respondeFalha(w http.ResponseWriter, recurso string, err error) {
	switch {
	case errors.Is(err, service.ErrAcessoNegado):
		h.metrics.AcessoNegado.WithLabelValues(recurso).Inc()
		respondErro(w, http.StatusForbidden, "acesso negado")
	case errors.Is(err, service.ErrNaoEncontrado):
		respondErro(w, http.StatusNotFound, "nao encontrado")
	default:
		h.logger.Error("falha no cadastro", zap.String("recurso", recurso), zap.Error(err))
		respondErro(w, http.StatusInternalServerError, "erro interno")
	}
}
