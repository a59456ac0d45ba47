package domain

import "time"

type TipoRegistro string

const (
	TipoReceita TipoRegistro = "receita"
	TipoDespesa TipoRegistro = "despesa"
)

type StatusRegistro string

const (
	StatusPago     StatusRegistro = "pago"
	StatusPendente StatusRegistro = "pendente"
)

// FiltroTodos é o sentinela de dimensão inativa: sempre casa.
const FiltroTodos = "todos"

// RegistroFinanceiro é um pagamento ou lançamento de obra, somente leitura
// para o agregador. Valores monetários sempre em centavos (int64) para
// eliminar deriva de ponto flutuante na soma de grandes volumes.
type RegistroFinanceiro struct {
	ID            string         `json:"id"`
	Data          *time.Time     `json:"data"`
	ValorCentavos int64          `json:"valor"`
	Tipo          TipoRegistro   `json:"tipo"`
	Status        StatusRegistro `json:"status"`
	CategoriaID   string         `json:"categoria_id"`
	CategoriaNome string         `json:"categoria"`
	ContaID       string         `json:"conta_id"`
	ContaNome     string         `json:"conta"`
	Descricao     string         `json:"descricao"`
	ObraID        string         `json:"obra_id,omitempty"`
}

// FiltroFinanceiro descreve as dimensões do filtro do dashboard.
// Campos zerados ("" / 0 / "todos") são dimensões inativas.
type FiltroFinanceiro struct {
	Tipo      string `json:"tipo"`
	Categoria string `json:"categoria"`
	Ano       int    `json:"ano"`
	Mes       int    `json:"mes"`    // 1..12
	Semana    int    `json:"semana"` // 1..5, semana do mês
	Busca     string `json:"busca"`
}

// SaldoCategoria acumula receitas e despesas de uma categoria.
type SaldoCategoria struct {
	CategoriaID string `json:"categoria_id"`
	Categoria   string `json:"categoria"`
	Receitas    int64  `json:"receitas"`
	Despesas    int64  `json:"despesas"`
	Saldo       int64  `json:"saldo"`
}

// PontoFluxo é um balde diário de entradas/saídas para o gráfico de fluxo.
type PontoFluxo struct {
	Data     string `json:"data"` // YYYY-MM-DD
	Receitas int64  `json:"receitas"`
	Despesas int64  `json:"despesas"`
}

// ResumoFinanceiro é o modelo de visão consumido pelos gráficos.
// Descartado após cada render; nunca persiste.
type ResumoFinanceiro struct {
	ReceitaTotal      int64            `json:"receita_total"`
	DespesaTotal      int64            `json:"despesa_total"`
	Saldo             int64            `json:"saldo"`
	ReceitaPaga       int64            `json:"receita_paga"`
	ReceitaPendente   int64            `json:"receita_pendente"`
	DespesaPaga       int64            `json:"despesa_paga"`
	DespesaPendente   int64            `json:"despesa_pendente"`
	SaldoPorCategoria []SaldoCategoria `json:"saldo_por_categoria"`
	FluxoDiario       []PontoFluxo     `json:"fluxo_diario"`
}
