package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
)

var (
	ErrAcessoNegado  = errors.New("acesso negado")
	ErrNaoEncontrado = errors.New("nao encontrado")
)

// CadastroProvider descreve as leituras de clientes e obras.
type CadastroProvider interface {
	ListarClientes(ctx context.Context, ids []string) ([]domain.Cliente, error)
	GetCliente(ctx context.Context, id string) (*domain.Cliente, error)
	ListarObras(ctx context.Context, ids []string) ([]domain.Obra, error)
	GetObra(ctx context.Context, id string) (*domain.Obra, error)
}

// CadastroService aplica o gate de autorização sobre as listagens: RBAC para
// a classe da ação, allow-list para estreitar instâncias de staff restrito.
type CadastroService struct {
	repo CadastroProvider
	gate *auth.Gate
}

func NewCadastroService(repo CadastroProvider, gate *auth.Gate) *CadastroService {
	return &CadastroService{repo: repo, gate: gate}
}

func (s *CadastroService) ListarClientes(ctx context.Context, claims *domain.Claims) ([]domain.Cliente, error) {
	ids, err := s.visiveis(ctx, claims, auth.RecursoClientes)
	if err != nil {
		return nil, err
	}
	return s.repo.ListarClientes(ctx, ids)
}

func (s *CadastroService) GetCliente(ctx context.Context, claims *domain.Claims, id string) (*domain.Cliente, error) {
	pode, err := s.gate.PodeVer(ctx, claims, auth.RecursoClientes, id)
	if err != nil {
		return nil, fmt.Errorf("cadastro: %w", err)
	}
	if !pode {
		return nil, ErrAcessoNegado
	}
	cliente, err := s.repo.GetCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrNaoEncontrado
	}
	return cliente, nil
}

func (s *CadastroService) ListarObras(ctx context.Context, claims *domain.Claims) ([]domain.Obra, error) {
	ids, err := s.visiveis(ctx, claims, auth.RecursoObras)
	if err != nil {
		return nil, err
	}
	return s.repo.ListarObras(ctx, ids)
}

func (s *CadastroService) GetObra(ctx context.Context, claims *domain.Claims, id string) (*domain.Obra, error) {
	pode, err := s.gate.PodeVer(ctx, claims, auth.RecursoObras, id)
	if err != nil {
		return nil, fmt.Errorf("cadastro: %w", err)
	}
	if !pode {
		return nil, ErrAcessoNegado
	}
	obra, err := s.repo.GetObra(ctx, id)
	if err != nil {
		return nil, err
	}
	if obra == nil {
		return nil, ErrNaoEncontrado
	}
	return obra, nil
}

// visiveis resolve a permissão de visualizar e o conjunto de instâncias:
// nil = sem filtro (irrestrito), slice = allow-list explícita.
func (s *CadastroService) visiveis(ctx context.Context, claims *domain.Claims, recurso string) ([]string, error) {
	if !s.gate.TemPermissao(claims, recurso, auth.AcaoVisualizar) {
		return nil, ErrAcessoNegado
	}
	ids, irrestrito, err := s.gate.InstanciasVisiveis(ctx, claims, recurso)
	if err != nil {
		return nil, fmt.Errorf("cadastro: %w", err)
	}
	if irrestrito {
		return nil, nil
	}
	return ids, nil
}
