package service

import (
	"context"
	"fmt"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
)

// AcessoProvider descreve as escritas de allow-list.
type AcessoProvider interface {
	ConcederAcesso(ctx context.Context, usuarioID, recurso, recursoID string) error
	RevogarAcesso(ctx context.Context, usuarioID, recurso, recursoID string) error
}

// Invalidador limpa as entradas de cache do usuário após mudança de acesso.
// Implementado pelo AllowListCache.
type Invalidador interface {
	Invalidar(ctx context.Context, usuarioID string)
}

// AcessoService gerencia as allow-lists de staff restrito. Toda escrita
// invalida o cache: a próxima leitura enxerga o novo conjunto na hora, sem
// esperar o TTL vencer.
type AcessoService struct {
	repo  AcessoProvider
	cache Invalidador
	gate  *auth.Gate
}

func NewAcessoService(repo AcessoProvider, cache Invalidador, gate *auth.Gate) *AcessoService {
	return &AcessoService{repo: repo, cache: cache, gate: gate}
}

// Conceder libera uma instância para o usuário. Só admin gerencia acessos.
func (s *AcessoService) Conceder(ctx context.Context, claims *domain.Claims, usuarioID, recurso, recursoID string) error {
	if !s.gate.TemPermissao(claims, auth.RecursoUsuarios, auth.AcaoEditar) {
		return ErrAcessoNegado
	}
	if err := s.repo.ConcederAcesso(ctx, usuarioID, recurso, recursoID); err != nil {
		return fmt.Errorf("acesso: %w", err)
	}
	s.cache.Invalidar(ctx, usuarioID)
	return nil
}

// Revogar remove a liberação e derruba o cache do usuário.
func (s *AcessoService) Revogar(ctx context.Context, claims *domain.Claims, usuarioID, recurso, recursoID string) error {
	if !s.gate.TemPermissao(claims, auth.RecursoUsuarios, auth.AcaoEditar) {
		return ErrAcessoNegado
	}
	if err := s.repo.RevogarAcesso(ctx, usuarioID, recurso, recursoID); err != nil {
		return fmt.Errorf("acesso: %w", err)
	}
	s.cache.Invalidar(ctx, usuarioID)
	return nil
}
