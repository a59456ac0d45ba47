package postgres

import (
	"context"
	"fmt"
)

// ListarAcessos devolve as instâncias explicitamente liberadas para o usuário
// em um recurso restrito (tabela usuario_acessos). Lista vazia é um resultado
// válido: nenhuma instância visível.
func (r *Repo) ListarAcessos(ctx context.Context, usuarioID, recurso string) ([]string, error) {
	query := `SELECT recurso_id FROM usuario_acessos WHERE usuario_id = $1 AND recurso = $2`

	rows, err := r.db.QueryContext(ctx, query, usuarioID, recurso)
	if err != nil {
		return nil, fmt.Errorf("postgres: falha ao listar acessos: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: falha ao ler acesso: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ConcederAcesso libera uma instância para o usuário. Conceder de novo o que
// já existe é idempotente.
func (r *Repo) ConcederAcesso(ctx context.Context, usuarioID, recurso, recursoID string) error {
	query := `
		INSERT INTO usuario_acessos (usuario_id, recurso, recurso_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, usuarioID, recurso, recursoID); err != nil {
		return fmt.Errorf("postgres: falha ao conceder acesso: %w", err)
	}
	return nil
}

// RevogarAcesso remove a liberação. Revogar o que não existe não é erro.
func (r *Repo) RevogarAcesso(ctx context.Context, usuarioID, recurso, recursoID string) error {
	query := `DELETE FROM usuario_acessos WHERE usuario_id = $1 AND recurso = $2 AND recurso_id = $3`

	if _, err := r.db.ExecContext(ctx, query, usuarioID, recurso, recursoID); err != nil {
		return fmt.Errorf("postgres: falha ao revogar acesso: %w", err)
	}
	return nil
}
