package domain

import "time"

// Cliente da construtora.
type Cliente struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email,omitempty"`
	Telefone  string    `json:"telefone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Obra é um projeto de construção vinculado a um cliente.
type Obra struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	ClienteID string    `json:"cliente_id"`
	Endereco  string    `json:"endereco,omitempty"`
	Status    string    `json:"status"` // "em_andamento", "concluida", "pausada"
	CreatedAt time.Time `json:"created_at"`
}
