package finance

import (
	"sort"

	"github.com/construsys/gestor/internal/domain"
)

// Agregar dobra os registros em um único passo: totais por tipo, recortes por
// status pago/pendente, saldo por categoria e fluxo diário. Pura e síncrona:
// chamadas repetidas sobre a mesma entrada produzem o mesmo resumo.
//
// Aritmética inteira em centavos de ponta a ponta: saldo == receita − despesa
// exato ao centavo, independente do volume somado.
func Agregar(registros []domain.RegistroFinanceiro) domain.ResumoFinanceiro {
	resumo := domain.ResumoFinanceiro{
		SaldoPorCategoria: []domain.SaldoCategoria{},
		FluxoDiario:       []domain.PontoFluxo{},
	}

	// índice categoria → posição no slice; a ordem de saída é a ordem da
	// primeira ocorrência, para snapshots determinísticos
	posCategoria := make(map[string]int)
	fluxo := make(map[string]*domain.PontoFluxo)

	for _, r := range registros {
		receita := r.Tipo == domain.TipoReceita

		if receita {
			resumo.ReceitaTotal += r.ValorCentavos
			if r.Status == domain.StatusPago {
				resumo.ReceitaPaga += r.ValorCentavos
			} else {
				resumo.ReceitaPendente += r.ValorCentavos
			}
		} else {
			resumo.DespesaTotal += r.ValorCentavos
			if r.Status == domain.StatusPago {
				resumo.DespesaPaga += r.ValorCentavos
			} else {
				resumo.DespesaPendente += r.ValorCentavos
			}
		}

		pos, ok := posCategoria[r.CategoriaID]
		if !ok {
			pos = len(resumo.SaldoPorCategoria)
			posCategoria[r.CategoriaID] = pos
			resumo.SaldoPorCategoria = append(resumo.SaldoPorCategoria, domain.SaldoCategoria{
				CategoriaID: r.CategoriaID,
				Categoria:   r.CategoriaNome,
			})
		}
		cat := &resumo.SaldoPorCategoria[pos]
		if receita {
			cat.Receitas += r.ValorCentavos
		} else {
			cat.Despesas += r.ValorCentavos
		}

		if r.Data != nil {
			dia := r.Data.Format("2006-01-02")
			p, ok := fluxo[dia]
			if !ok {
				p = &domain.PontoFluxo{Data: dia}
				fluxo[dia] = p
			}
			if receita {
				p.Receitas += r.ValorCentavos
			} else {
				p.Despesas += r.ValorCentavos
			}
		}
	}

	resumo.Saldo = resumo.ReceitaTotal - resumo.DespesaTotal
	for i := range resumo.SaldoPorCategoria {
		cat := &resumo.SaldoPorCategoria[i]
		cat.Saldo = cat.Receitas - cat.Despesas
	}

	// fluxo em ordem cronológica para o gráfico
	for _, p := range fluxo {
		resumo.FluxoDiario = append(resumo.FluxoDiario, *p)
	}
	sort.Slice(resumo.FluxoDiario, func(i, j int) bool {
		return resumo.FluxoDiario[i].Data < resumo.FluxoDiario[j].Data
	})

	return resumo
}
