package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/construsys/gestor/internal/audit"
)

// WriteBatch grava um lote de eventos de auditoria de login em um único
// INSERT. Chamado apenas pelo worker assíncrono do Trail.
func (r *Repo) WriteBatch(ctx context.Context, eventos []audit.EventoLogin) error {
	if len(eventos) == 0 {
		return nil
	}

	const numCampos = 7
	placeholderStr := ""
	vals := make([]interface{}, 0, len(eventos)*numCampos)

	// monta dinamicamente os placeholders do insert em lote
	for i, e := range eventos {
		p := i * numCampos
		placeholderStr += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d),",
			p+1, p+2, p+3, p+4, p+5, p+6, p+7)

		vals = append(vals,
			e.ID, e.UsuarioID, e.Sucesso, nullIfEmpty(e.MotivoFalha), e.IP, e.UserAgent, e.CriadoEm,
		)
	}

	query := fmt.Sprintf(
		"INSERT INTO auditoria_login (id, usuario_id, sucesso, motivo_falha, ip, user_agent, criado_em) VALUES %s",
		strings.TrimSuffix(placeholderStr, ","),
	)

	_, err := r.db.ExecContext(ctx, query, vals...)
	return err
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
