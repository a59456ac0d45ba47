package finance

import (
	"testing"
	"time"

	"github.com/construsys/gestor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dia(ano, mes, d int) *time.Time {
	t := time.Date(ano, time.Month(mes), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func registrosTeste() []domain.RegistroFinanceiro {
	return []domain.RegistroFinanceiro{
		{ID: "r1", Data: dia(2025, 1, 5), ValorCentavos: 100_00, Tipo: domain.TipoReceita, Status: domain.StatusPago, CategoriaID: "X", CategoriaNome: "Material", Descricao: "cimento obra centro"},
		{ID: "r2", Data: dia(2025, 1, 20), ValorCentavos: 50_00, Tipo: domain.TipoDespesa, Status: domain.StatusPago, CategoriaID: "X", CategoriaNome: "Material", Descricao: "areia"},
		{ID: "r3", Data: dia(2025, 2, 3), ValorCentavos: 30_00, Tipo: domain.TipoDespesa, Status: domain.StatusPendente, CategoriaID: "Y", CategoriaNome: "Mao de obra", Descricao: "pedreiro"},
		{ID: "r4", Data: nil, ValorCentavos: 10_00, Tipo: domain.TipoDespesa, Status: domain.StatusPendente, CategoriaID: "X", CategoriaNome: "Material", Descricao: "sem data"},
	}
}

func idsDe(registros []domain.RegistroFinanceiro) []string {
	ids := make([]string, len(registros))
	for i, r := range registros {
		ids[i] = r.ID
	}
	return ids
}

func TestFiltrar_TudoInativoDevolveTudo(t *testing.T) {
	entrada := registrosTeste()

	saida := Filtrar(entrada, domain.FiltroFinanceiro{})
	assert.Equal(t, idsDe(entrada), idsDe(saida))

	saida = Filtrar(entrada, domain.FiltroFinanceiro{Tipo: domain.FiltroTodos, Categoria: domain.FiltroTodos})
	assert.Equal(t, idsDe(entrada), idsDe(saida))
}

func TestFiltrar_Conjuncao(t *testing.T) {
	// tipo=despesa E categoria=X: exatamente o subconjunto que satisfaz ambos
	saida := Filtrar(registrosTeste(), domain.FiltroFinanceiro{
		Tipo:      string(domain.TipoDespesa),
		Categoria: "X",
	})
	assert.Equal(t, []string{"r2", "r4"}, idsDe(saida))
}

func TestFiltrar_SemDataFalhaFiltroDeDataAtivo(t *testing.T) {
	saida := Filtrar(registrosTeste(), domain.FiltroFinanceiro{Ano: 2025})
	assert.NotContains(t, idsDe(saida), "r4")
	assert.Len(t, saida, 3)

	saida = Filtrar(registrosTeste(), domain.FiltroFinanceiro{Mes: 1})
	assert.Equal(t, []string{"r1", "r2"}, idsDe(saida))
}

func TestFiltrar_SemanaDoMes(t *testing.T) {
	// dia 5 → semana 1; dia 20 → semana 3
	saida := Filtrar(registrosTeste(), domain.FiltroFinanceiro{Ano: 2025, Mes: 1, Semana: 1})
	assert.Equal(t, []string{"r1"}, idsDe(saida))

	saida = Filtrar(registrosTeste(), domain.FiltroFinanceiro{Ano: 2025, Mes: 1, Semana: 3})
	assert.Equal(t, []string{"r2"}, idsDe(saida))
}

func TestFiltrar_BuscaCaseInsensitive(t *testing.T) {
	saida := Filtrar(registrosTeste(), domain.FiltroFinanceiro{Busca: "CIMENTO"})
	require.Len(t, saida, 1)
	assert.Equal(t, "r1", saida[0].ID)

	// casa em qualquer campo pesquisável (nome da categoria)
	saida = Filtrar(registrosTeste(), domain.FiltroFinanceiro{Busca: "mao de"})
	require.Len(t, saida, 1)
	assert.Equal(t, "r3", saida[0].ID)

	saida = Filtrar(registrosTeste(), domain.FiltroFinanceiro{Busca: "nada-disso"})
	assert.Empty(t, saida)
}

func TestFiltrar_BuscaCombinadaComDimensoes(t *testing.T) {
	saida := Filtrar(registrosTeste(), domain.FiltroFinanceiro{
		Tipo:  string(domain.TipoReceita),
		Busca: "areia", // r2 é despesa: conjunção elimina tudo
	})
	assert.Empty(t, saida)
}

func TestSemanaDoMes(t *testing.T) {
	casos := map[int]int{1: 1, 7: 1, 8: 2, 14: 2, 15: 3, 28: 4, 29: 5, 31: 5}
	for diaMes, esperada := range casos {
		assert.Equal(t, esperada, semanaDoMes(diaMes), "dia %d", diaMes)
	}
}
