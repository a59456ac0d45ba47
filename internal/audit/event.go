package audit

import "time"

// Motivos de falha registrados na auditoria. O cliente nunca vê essa
// distinção: a resposta HTTP é idêntica para os dois casos.
const (
	MotivoUsuarioNaoEncontrado = "usuario nao encontrado ou inativo"
	MotivoSenhaIncorreta       = "senha incorreta"
)

// EventoLogin descreve o resultado de uma tentativa de login. Append-only:
// criado uma vez por tentativa, nunca atualizado ou removido por esta camada.
type EventoLogin struct {
	ID          string    `json:"id"`
	UsuarioID   *string   `json:"usuario_id"` // nil quando o login não corresponde a ninguém
	Sucesso     bool      `json:"sucesso"`
	MotivoFalha string    `json:"motivo_falha,omitempty"`
	IP          string    `json:"ip"`
	UserAgent   string    `json:"user_agent"`
	CriadoEm    time.Time `json:"criado_em"`
}

// Registrador é o contrato consumido pelo fluxo de login.
type Registrador interface {
	Registrar(evento EventoLogin)
}
