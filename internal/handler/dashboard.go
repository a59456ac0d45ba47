package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
	"go.uber.org/zap"
)

// ResumoProvider descreve o que o handler precisa do serviço de dashboard.
type ResumoProvider interface {
	Resumo(ctx context.Context, filtro domain.FiltroFinanceiro) (*domain.ResumoFinanceiro, error)
}

type DashboardHandler struct {
	service ResumoProvider
	gate    *auth.Gate
	logger  *zap.Logger
}

func NewDashboardHandler(s ResumoProvider, gate *auth.Gate, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, gate: gate, logger: logger.Named("handler.dashboard")}
}

// Resumo — GET /api/dashboard/resumo?tipo=&categoria=&ano=&mes=&semana=&busca=
func (h *DashboardHandler) Resumo(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsDoContexto(r.Context())
	if !h.gate.TemPermissao(claims, auth.RecursoDashboard, auth.AcaoVisualizar) {
		respondErro(w, http.StatusForbidden, "acesso negado")
		return
	}

	q := r.URL.Query()
	filtro := domain.FiltroFinanceiro{
		Tipo:      q.Get("tipo"),
		Categoria: q.Get("categoria"),
		Ano:       atoiOuZero(q.Get("ano")),
		Mes:       atoiOuZero(q.Get("mes")),
		Semana:    atoiOuZero(q.Get("semana")),
		Busca:     q.Get("busca"),
	}

	resumo, err := h.service.Resumo(r.Context(), filtro)
	if err != nil {
		h.logger.Error("falha ao montar resumo", zap.Error(err))
		respondErro(w, http.StatusInternalServerError, "erro interno")
		return
	}

	respondJSON(w, http.StatusOK, resumo)
}

// atoiOuZero: parâmetro ausente ou malformado vale dimensão inativa.
func atoiOuZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
