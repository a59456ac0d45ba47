package service

import (
	"context"
	"fmt"

	"github.com/construsys/gestor/internal/domain"
	"github.com/construsys/gestor/internal/finance"
)

// RegistroProvider descreve o contrato de leitura dos lançamentos.
type RegistroProvider interface {
	ListarRegistros(ctx context.Context) ([]domain.RegistroFinanceiro, error)
}

type DashboardService struct {
	repo RegistroProvider
}

func NewDashboardService(repo RegistroProvider) *DashboardService {
	return &DashboardService{repo: repo}
}

// Resumo busca os lançamentos, aplica o filtro e agrega. O agregador é puro:
// nada aqui retém estado entre requisições.
func (s *DashboardService) Resumo(ctx context.Context, filtro domain.FiltroFinanceiro) (*domain.ResumoFinanceiro, error) {
	registros, err := s.repo.ListarRegistros(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: falha ao carregar registros: %w", err)
	}

	resumo := finance.Agregar(finance.Filtrar(registros, filtro))
	return &resumo, nil
}

// Registros expõe a listagem crua para a página de pagamentos.
func (s *DashboardService) Registros(ctx context.Context) ([]domain.RegistroFinanceiro, error) {
	return s.repo.ListarRegistros(ctx)
}
