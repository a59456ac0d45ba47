package auth

import (
	"context"
	"fmt"

	"github.com/construsys/gestor/internal/domain"
)

// AllowListProvider devolve as instâncias explicitamente liberadas para um
// usuário em um recurso restrito. Implementado pelo cache Redis com fallback
// em Postgres.
type AllowListProvider interface {
	InstanciasPermitidas(ctx context.Context, usuarioID, recurso string) ([]string, error)
}

// Gate responde "pode executar esta classe de ação?" (RBAC grosso) e
// "quais instâncias pode ver?" (ACL fina) como duas checagens independentes.
// Novos recursos entram pela tabela estática sem tocar nesta lógica.
type Gate struct {
	acl AllowListProvider
}

func NewGate(acl AllowListProvider) *Gate {
	return &Gate{acl: acl}
}

// TemPermissao é incondicionalmente verdadeiro para admin; para os demais,
// verdadeiro sse existe entrada (cargo, recurso, ação) na tabela estática.
func (g *Gate) TemPermissao(claims *domain.Claims, recurso, acao string) bool {
	if claims == nil {
		return false
	}
	if claims.Cargo == domain.CargoAdmin {
		return true
	}
	_, ok := entradaDoCargo(claims.Cargo, recurso, acao)
	return ok
}

// Restrita indica se a visibilidade do recurso para este cargo exige
// estreitamento por allow-list. Admin nunca é restrito.
func (g *Gate) Restrita(claims *domain.Claims, recurso string) bool {
	if claims == nil || claims.Cargo == domain.CargoAdmin {
		return false
	}
	p, ok := entradaDoCargo(claims.Cargo, recurso, AcaoVisualizar)
	return ok && p.Restrita
}

// InstanciasVisiveis devolve (nil, true) quando nenhum filtro é necessário
// (admin ou entrada irrestrita); para entrada restrita devolve a allow-list
// do usuário. Lista vazia significa nenhuma instância visível.
func (g *Gate) InstanciasVisiveis(ctx context.Context, claims *domain.Claims, recurso string) (ids []string, irrestrito bool, err error) {
	if !g.Restrita(claims, recurso) {
		return nil, true, nil
	}
	ids, err = g.acl.InstanciasPermitidas(ctx, claims.UserID, recurso)
	if err != nil {
		return nil, false, fmt.Errorf("allow-list de %s: %w", recurso, err)
	}
	return ids, false, nil
}

// PodeVer decide acesso a uma instância: admin sempre; os demais precisam da
// permissão base de visualizar E (recurso irrestrito OU id na allow-list).
func (g *Gate) PodeVer(ctx context.Context, claims *domain.Claims, recurso, id string) (bool, error) {
	if claims == nil {
		return false, nil
	}
	if claims.Cargo == domain.CargoAdmin {
		return true, nil
	}
	if !g.TemPermissao(claims, recurso, AcaoVisualizar) {
		return false, nil
	}
	ids, irrestrito, err := g.InstanciasVisiveis(ctx, claims, recurso)
	if err != nil {
		return false, err
	}
	if irrestrito {
		return true, nil
	}
	for _, permitido := range ids {
		if permitido == id {
			return true, nil
		}
	}
	return false, nil
}
