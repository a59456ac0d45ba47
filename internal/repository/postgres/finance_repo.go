package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/construsys/gestor/internal/domain"
)

// ListarRegistros carrega os lançamentos financeiros (pagamentos e custos de
// obra) para o agregador do dashboard. O filtro fino acontece em memória, no
// pacote finance.
func (r *Repo) ListarRegistros(ctx context.Context) ([]domain.RegistroFinanceiro, error) {
	query := `
		SELECT p.id, p.data, p.valor_centavos, p.tipo, p.status,
		       p.categoria_id, c.nome, p.conta_id, ct.nome, p.descricao, COALESCE(p.obra_id, '')
		FROM pagamentos p
		JOIN categorias c ON c.id = p.categoria_id
		JOIN contas ct ON ct.id = p.conta_id
		ORDER BY p.data NULLS LAST, p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: falha ao listar registros: %w", err)
	}
	defer rows.Close()

	registros := []domain.RegistroFinanceiro{}
	for rows.Next() {
		var reg domain.RegistroFinanceiro
		var data sql.NullTime
		if err := rows.Scan(
			&reg.ID, &data, &reg.ValorCentavos, &reg.Tipo, &reg.Status,
			&reg.CategoriaID, &reg.CategoriaNome, &reg.ContaID, &reg.ContaNome,
			&reg.Descricao, &reg.ObraID,
		); err != nil {
			return nil, fmt.Errorf("postgres: falha ao ler registro: %w", err)
		}
		if data.Valid {
			d := data.Time
			reg.Data = &d
		}
		registros = append(registros, reg)
	}
	return registros, rows.Err()
}
