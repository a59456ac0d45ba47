package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cargo define o papel do usuário no sistema.
type Cargo string

const (
	CargoAdmin Cargo = "admin"
	CargoStaff Cargo = "staff"
)

// Claims é a carga assinada do token de sessão. Imutável após emissão:
// qualquer mudança de permissão exige um novo token.
type Claims struct {
	UserID     string   `json:"user_id"`
	Login      string   `json:"login"`
	Cargo      Cargo    `json:"cargo"`
	Permissoes []string `json:"permissoes"`
	jwt.RegisteredClaims
}

// Valido rejeita payloads decodificados sem os campos obrigatórios.
// Um token bem assinado mas com claims incompletas é tratado como inválido.
func (c *Claims) Valido() bool {
	if c == nil || c.UserID == "" || c.Login == "" {
		return false
	}
	return c.Cargo == CargoAdmin || c.Cargo == CargoStaff
}

type LoginRequest struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

// PerfilUsuario é a projeção pública do usuário. Nunca carrega o hash de senha.
type PerfilUsuario struct {
	ID           string   `json:"id"`
	Login        string   `json:"login"`
	NomeCompleto string   `json:"nome_completo"`
	Email        string   `json:"email"`
	Cargo        Cargo    `json:"cargo"`
	Permissoes   []string `json:"permissoes"`
}

type LoginResponse struct {
	Sucesso bool           `json:"sucesso"`
	Usuario *PerfilUsuario `json:"usuario"`
}

type SessaoResponse struct {
	Autenticado bool           `json:"autenticado"`
	Usuario     *PerfilUsuario `json:"usuario,omitempty"`
}

// Usuario é o registro persistido. O backend é dono do ciclo de vida;
// a camada de autenticação só lê e atualiza o último acesso.
type Usuario struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	NomeCompleto string    `json:"nome_completo"`
	Email        string    `json:"email"`
	SenhaHash    string    `json:"-"`
	Cargo        Cargo     `json:"cargo"`
	Ativo        bool      `json:"ativo"`
	UltimoAcesso time.Time `json:"ultimo_acesso"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Perfil monta a projeção pública com as permissões efetivas do cargo.
func (u *Usuario) Perfil(permissoes []string) *PerfilUsuario {
	return &PerfilUsuario{
		ID:           u.ID,
		Login:        u.Login,
		NomeCompleto: u.NomeCompleto,
		Email:        u.Email,
		Cargo:        u.Cargo,
		Permissoes:   permissoes,
	}
}
