package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/construsys/gestor/internal/domain"
)

// clausulaIn monta "IN ($1, $2, ...)" e os argumentos correspondentes.
func clausulaIn(ids []string) (string, []interface{}) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return "(" + strings.Join(placeholders, ", ") + ")", args
}

// ListarClientes lista clientes; com ids não-nulo, restringe ao conjunto
// visível do chamador (allow-list). ids vazio devolve lista vazia direto,
// sem tocar no banco.
func (r *Repo) ListarClientes(ctx context.Context, ids []string) ([]domain.Cliente, error) {
	query := `SELECT id, nome, COALESCE(email, ''), COALESCE(telefone, ''), created_at FROM clientes`
	args := []interface{}{}
	if ids != nil {
		if len(ids) == 0 {
			return []domain.Cliente{}, nil
		}
		in, inArgs := clausulaIn(ids)
		query += ` WHERE id IN ` + in
		args = inArgs
	}
	query += ` ORDER BY nome`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: falha ao listar clientes: %w", err)
	}
	defer rows.Close()

	clientes := []domain.Cliente{}
	for rows.Next() {
		var c domain.Cliente
		if err := rows.Scan(&c.ID, &c.Nome, &c.Email, &c.Telefone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: falha ao ler cliente: %w", err)
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

func (r *Repo) GetCliente(ctx context.Context, id string) (*domain.Cliente, error) {
	query := `SELECT id, nome, COALESCE(email, ''), COALESCE(telefone, ''), created_at FROM clientes WHERE id = $1`

	c := &domain.Cliente{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Nome, &c.Email, &c.Telefone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: falha ao buscar cliente: %w", err)
	}
	return c, nil
}

// ListarObras segue o mesmo contrato de ListarClientes.
func (r *Repo) ListarObras(ctx context.Context, ids []string) ([]domain.Obra, error) {
	query := `SELECT id, nome, cliente_id, COALESCE(endereco, ''), status, created_at FROM obras`
	args := []interface{}{}
	if ids != nil {
		if len(ids) == 0 {
			return []domain.Obra{}, nil
		}
		in, inArgs := clausulaIn(ids)
		query += ` WHERE id IN ` + in
		args = inArgs
	}
	query += ` ORDER BY nome`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: falha ao listar obras: %w", err)
	}
	defer rows.Close()

	obras := []domain.Obra{}
	for rows.Next() {
		var o domain.Obra
		if err := rows.Scan(&o.ID, &o.Nome, &o.ClienteID, &o.Endereco, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: falha ao ler obra: %w", err)
		}
		obras = append(obras, o)
	}
	return obras, rows.Err()
}

func (r *Repo) GetObra(ctx context.Context, id string) (*domain.Obra, error) {
	query := `SELECT id, nome, cliente_id, COALESCE(endereco, ''), status, created_at FROM obras WHERE id = $1`

	o := &domain.Obra{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Nome, &o.ClienteID, &o.Endereco, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: falha ao buscar obra: %w", err)
	}
	return o, nil
}
