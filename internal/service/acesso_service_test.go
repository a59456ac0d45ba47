package service

import (
	"context"
	"errors"
	"testing"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type acessoRepoFake struct {
	concedidos []string
	revogados  []string
	erro       error
}

func (f *acessoRepoFake) ConcederAcesso(_ context.Context, usuarioID, recurso, recursoID string) error {
	if f.erro != nil {
		return f.erro
	}
	f.concedidos = append(f.concedidos, usuarioID+":"+recurso+":"+recursoID)
	return nil
}

func (f *acessoRepoFake) RevogarAcesso(_ context.Context, usuarioID, recurso, recursoID string) error {
	if f.erro != nil {
		return f.erro
	}
	f.revogados = append(f.revogados, usuarioID+":"+recurso+":"+recursoID)
	return nil
}

type invalidadorFake struct {
	usuarios []string
}

func (f *invalidadorFake) Invalidar(_ context.Context, usuarioID string) {
	f.usuarios = append(f.usuarios, usuarioID)
}

type aclVazia struct{}

func (aclVazia) InstanciasPermitidas(_ context.Context, _, _ string) ([]string, error) {
	return []string{}, nil
}

func claimsDe(cargo domain.Cargo) *domain.Claims {
	return &domain.Claims{UserID: "adm-1", Login: "root", Cargo: cargo}
}

func TestAcessoService_ConcederInvalidaCache(t *testing.T) {
	repo := &acessoRepoFake{}
	inv := &invalidadorFake{}
	s := NewAcessoService(repo, inv, auth.NewGate(aclVazia{}))

	err := s.Conceder(context.Background(), claimsDe(domain.CargoAdmin), "u-7", "clientes", "c-3")
	require.NoError(t, err)
	assert.Equal(t, []string{"u-7:clientes:c-3"}, repo.concedidos)
	assert.Equal(t, []string{"u-7"}, inv.usuarios)
}

func TestAcessoService_RevogarInvalidaCache(t *testing.T) {
	repo := &acessoRepoFake{}
	inv := &invalidadorFake{}
	s := NewAcessoService(repo, inv, auth.NewGate(aclVazia{}))

	err := s.Revogar(context.Background(), claimsDe(domain.CargoAdmin), "u-7", "obras", "o-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u-7:obras:o-1"}, repo.revogados)
	assert.Equal(t, []string{"u-7"}, inv.usuarios)
}

func TestAcessoService_StaffNaoGerenciaAcessos(t *testing.T) {
	repo := &acessoRepoFake{}
	inv := &invalidadorFake{}
	s := NewAcessoService(repo, inv, auth.NewGate(aclVazia{}))

	err := s.Conceder(context.Background(), claimsDe(domain.CargoStaff), "u-7", "clientes", "c-3")
	assert.ErrorIs(t, err, ErrAcessoNegado)

	err = s.Revogar(context.Background(), nil, "u-7", "clientes", "c-3")
	assert.ErrorIs(t, err, ErrAcessoNegado)

	assert.Empty(t, repo.concedidos)
	assert.Empty(t, repo.revogados)
	assert.Empty(t, inv.usuarios)
}

func TestAcessoService_ErroDeBancoNaoInvalida(t *testing.T) {
	repo := &acessoRepoFake{erro: errors.New("conexao recusada")}
	inv := &invalidadorFake{}
	s := NewAcessoService(repo, inv, auth.NewGate(aclVazia{}))

	err := s.Conceder(context.Background(), claimsDe(domain.CargoAdmin), "u-7", "clientes", "c-3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAcessoNegado)
	assert.Empty(t, inv.usuarios)
}
