package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/construsys/gestor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type aclFake struct {
	listas map[string][]string // "usuario:recurso" -> ids
	err    error
}

func (f *aclFake) InstanciasPermitidas(_ context.Context, usuarioID, recurso string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listas[usuarioID+":"+recurso], nil
}

func claimsAdmin() *domain.Claims {
	return &domain.Claims{UserID: "adm-1", Login: "root", Cargo: domain.CargoAdmin}
}

func claimsStaff(id string) *domain.Claims {
	return &domain.Claims{UserID: id, Login: "staff", Cargo: domain.CargoStaff}
}

func TestGate_AdminUniversal(t *testing.T) {
	g := NewGate(&aclFake{})

	for _, recurso := range todosRecursos {
		for _, acao := range todasAcoes {
			assert.True(t, g.TemPermissao(claimsAdmin(), recurso, acao),
				"%s:%s deveria ser permitido para admin", recurso, acao)
		}
	}
	// mesmo recurso desconhecido da tabela
	assert.True(t, g.TemPermissao(claimsAdmin(), "inexistente", "qualquer"))
}

func TestGate_TabelaStaff(t *testing.T) {
	g := NewGate(&aclFake{})
	staff := claimsStaff("u-1")

	assert.True(t, g.TemPermissao(staff, RecursoClientes, AcaoVisualizar))
	assert.True(t, g.TemPermissao(staff, RecursoPagamentos, AcaoCriar))
	assert.False(t, g.TemPermissao(staff, RecursoClientes, AcaoExcluir))
	assert.False(t, g.TemPermissao(staff, RecursoUsuarios, AcaoVisualizar))
	assert.False(t, g.TemPermissao(nil, RecursoClientes, AcaoVisualizar))
}

func TestGate_Restrita(t *testing.T) {
	g := NewGate(&aclFake{})

	assert.True(t, g.Restrita(claimsStaff("u-1"), RecursoClientes))
	assert.True(t, g.Restrita(claimsStaff("u-1"), RecursoObras))
	assert.False(t, g.Restrita(claimsStaff("u-1"), RecursoPagamentos))
	assert.False(t, g.Restrita(claimsAdmin(), RecursoClientes))
}

func TestGate_EstreitamentoPorAllowList(t *testing.T) {
	g := NewGate(&aclFake{listas: map[string][]string{
		"u-1:clientes": {"c-10"},
	}})
	staff := claimsStaff("u-1")
	ctx := context.Background()

	pode, err := g.PodeVer(ctx, staff, RecursoClientes, "c-10")
	require.NoError(t, err)
	assert.True(t, pode)

	pode, err = g.PodeVer(ctx, staff, RecursoClientes, "c-99")
	require.NoError(t, err)
	assert.False(t, pode)

	// admin ignora a allow-list
	pode, err = g.PodeVer(ctx, claimsAdmin(), RecursoClientes, "c-99")
	require.NoError(t, err)
	assert.True(t, pode)
}

func TestGate_AllowListVazia(t *testing.T) {
	g := NewGate(&aclFake{})
	staff := claimsStaff("u-2")
	ctx := context.Background()

	ids, irrestrito, err := g.InstanciasVisiveis(ctx, staff, RecursoClientes)
	require.NoError(t, err)
	assert.False(t, irrestrito)
	assert.Empty(t, ids)

	pode, err := g.PodeVer(ctx, staff, RecursoClientes, "c-1")
	require.NoError(t, err)
	assert.False(t, pode)
}

func TestGate_RecursoIrrestrito(t *testing.T) {
	g := NewGate(&aclFake{})
	ctx := context.Background()

	// pagamentos não é restrito: visível sem consultar a allow-list
	ids, irrestrito, err := g.InstanciasVisiveis(ctx, claimsStaff("u-1"), RecursoPagamentos)
	require.NoError(t, err)
	assert.True(t, irrestrito)
	assert.Nil(t, ids)

	pode, err := g.PodeVer(ctx, claimsStaff("u-1"), RecursoPagamentos, "p-77")
	require.NoError(t, err)
	assert.True(t, pode)
}

func TestGate_ErroDoProvider(t *testing.T) {
	g := NewGate(&aclFake{err: errors.New("banco fora")})
	ctx := context.Background()

	_, _, err := g.InstanciasVisiveis(ctx, claimsStaff("u-1"), RecursoClientes)
	assert.Error(t, err)

	_, err = g.PodeVer(ctx, claimsStaff("u-1"), RecursoClientes, "c-1")
	assert.Error(t, err)
}

func TestPermissoesDoCargo(t *testing.T) {
	staff := PermissoesDoCargo(domain.CargoStaff)
	assert.Contains(t, staff, "clientes:visualizar")
	assert.Contains(t, staff, "dashboard:visualizar")
	assert.NotContains(t, staff, "usuarios:visualizar")

	admin := PermissoesDoCargo(domain.CargoAdmin)
	assert.Contains(t, admin, "usuarios:excluir")
	assert.Len(t, admin, len(todosRecursos)*len(todasAcoes))
}
