package finance

import (
	"strings"

	"github.com/construsys/gestor/internal/domain"
)

// Campos de texto pesquisáveis pela busca livre.
func camposBusca(r *domain.RegistroFinanceiro) []string {
	return []string{r.Descricao, r.CategoriaNome, r.ContaNome}
}

// Filtrar mantém um registro sse ele casa com TODAS as dimensões ativas do
// filtro (conjunção) e com o termo de busca. Dimensão inativa ("" / "todos" /
// zero) casa sempre. Registro sem data falha qualquer filtro de data ativo:
// ausência nunca vale como curinga.
func Filtrar(registros []domain.RegistroFinanceiro, f domain.FiltroFinanceiro) []domain.RegistroFinanceiro {
	busca := strings.ToLower(strings.TrimSpace(f.Busca))

	resultado := make([]domain.RegistroFinanceiro, 0, len(registros))
	for _, r := range registros {
		if !casaTipo(&r, f.Tipo) {
			continue
		}
		if !casaCategoria(&r, f.Categoria) {
			continue
		}
		if !casaData(&r, f.Ano, f.Mes, f.Semana) {
			continue
		}
		if !casaBusca(&r, busca) {
			continue
		}
		resultado = append(resultado, r)
	}
	return resultado
}

func dimensaoAtiva(valor string) bool {
	return valor != "" && valor != domain.FiltroTodos
}

func casaTipo(r *domain.RegistroFinanceiro, tipo string) bool {
	if !dimensaoAtiva(tipo) {
		return true
	}
	return string(r.Tipo) == tipo
}

func casaCategoria(r *domain.RegistroFinanceiro, categoria string) bool {
	if !dimensaoAtiva(categoria) {
		return true
	}
	return r.CategoriaID == categoria
}

func casaData(r *domain.RegistroFinanceiro, ano, mes, semana int) bool {
	if ano == 0 && mes == 0 && semana == 0 {
		return true
	}
	if r.Data == nil {
		return false
	}
	if ano != 0 && r.Data.Year() != ano {
		return false
	}
	if mes != 0 && int(r.Data.Month()) != mes {
		return false
	}
	if semana != 0 && semanaDoMes(r.Data.Day()) != semana {
		return false
	}
	return true
}

// semanaDoMes: dias 1-7 → semana 1, 8-14 → 2, ... 29-31 → 5.
func semanaDoMes(dia int) int {
	return (dia-1)/7 + 1
}

func casaBusca(r *domain.RegistroFinanceiro, busca string) bool {
	if busca == "" {
		return true
	}
	for _, campo := range camposBusca(r) {
		if strings.Contains(strings.ToLower(campo), busca) {
			return true
		}
	}
	return false
}
