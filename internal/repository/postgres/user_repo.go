package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/construsys/gestor/internal/domain"
)

// GetUsuarioPorLogin busca o usuário pelo login. Ausência não é erro:
// devolve (nil, nil) e o fluxo de login trata como credencial inválida.
func (r *Repo) GetUsuarioPorLogin(ctx context.Context, login string) (*domain.Usuario, error) {
	query := `
		SELECT id, login, nome_completo, email, senha_hash, cargo, ativo, ultimo_acesso, created_at, updated_at
		FROM usuarios WHERE login = $1`

	u := &domain.Usuario{}
	var ultimoAcesso sql.NullTime
	err := r.db.QueryRowContext(ctx, query, login).Scan(
		&u.ID, &u.Login, &u.NomeCompleto, &u.Email, &u.SenhaHash, &u.Cargo, &u.Ativo,
		&ultimoAcesso, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: falha ao buscar usuario: %w", err)
	}
	if ultimoAcesso.Valid {
		u.UltimoAcesso = ultimoAcesso.Time
	}
	return u, nil
}

// AtualizarUltimoAcesso registra o acesso bem-sucedido.
func (r *Repo) AtualizarUltimoAcesso(ctx context.Context, usuarioID string) error {
	query := `UPDATE usuarios SET ultimo_acesso = NOW(), updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, usuarioID)
	if err != nil {
		return fmt.Errorf("postgres: falha ao atualizar ultimo acesso: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("postgres: usuario %s nao encontrado", usuarioID)
	}
	return nil
}
