package auth

import "github.com/construsys/gestor/internal/domain"

// Recursos e ações conhecidos pela tabela de permissões.
const (
	RecursoClientes   = "clientes"
	RecursoObras      = "obras"
	RecursoPagamentos = "pagamentos"
	RecursoDashboard  = "dashboard"
	RecursoUsuarios   = "usuarios"

	AcaoVisualizar = "visualizar"
	AcaoCriar      = "criar"
	AcaoEditar     = "editar"
	AcaoExcluir    = "excluir"
)

// Permissao é uma entrada estática (recurso, ação). Restrita indica que a
// visibilidade ainda é estreitada para a allow-list explícita do usuário,
// em vez de valer para todas as instâncias do recurso.
type Permissao struct {
	Recurso  string
	Acao     string
	Restrita bool
}

// Tabela estática carregada no init do processo, nunca mutada depois.
// Admin não aparece aqui: passa por cima de qualquer verificação fina.
var tabelaStaff = []Permissao{
	{Recurso: RecursoClientes, Acao: AcaoVisualizar, Restrita: true},
	{Recurso: RecursoClientes, Acao: AcaoCriar},
	{Recurso: RecursoClientes, Acao: AcaoEditar},
	{Recurso: RecursoObras, Acao: AcaoVisualizar, Restrita: true},
	{Recurso: RecursoObras, Acao: AcaoCriar},
	{Recurso: RecursoObras, Acao: AcaoEditar},
	{Recurso: RecursoPagamentos, Acao: AcaoVisualizar},
	{Recurso: RecursoPagamentos, Acao: AcaoCriar},
	{Recurso: RecursoDashboard, Acao: AcaoVisualizar},
}

var todasAcoes = []string{AcaoVisualizar, AcaoCriar, AcaoEditar, AcaoExcluir}
var todosRecursos = []string{RecursoClientes, RecursoObras, RecursoPagamentos, RecursoDashboard, RecursoUsuarios}

// PermissoesDoCargo devolve os identificadores "recurso:acao" embarcados nas
// claims do token. Para admin é o produto completo recurso × ação.
func PermissoesDoCargo(cargo domain.Cargo) []string {
	if cargo == domain.CargoAdmin {
		tags := make([]string, 0, len(todosRecursos)*len(todasAcoes))
		for _, r := range todosRecursos {
			for _, a := range todasAcoes {
				tags = append(tags, r+":"+a)
			}
		}
		return tags
	}

	tags := make([]string, 0, len(tabelaStaff))
	for _, p := range tabelaStaff {
		tags = append(tags, p.Recurso+":"+p.Acao)
	}
	return tags
}

// entradaDoCargo procura a entrada estática de (cargo, recurso, ação).
func entradaDoCargo(cargo domain.Cargo, recurso, acao string) (Permissao, bool) {
	if cargo != domain.CargoStaff {
		return Permissao{}, false
	}
	for _, p := range tabelaStaff {
		if p.Recurso == recurso && p.Acao == acao {
			return p, true
		}
	}
	return Permissao{}, false
}
