package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/construsys/gestor/internal/audit"
	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCamposObrigatorios   = errors.New("login e senha sao obrigatorios")
	ErrCredenciaisInvalidas = errors.New("credenciais invalidas")
)

// UsuarioProvider descreve o que o fluxo de login precisa do banco.
type UsuarioProvider interface {
	GetUsuarioPorLogin(ctx context.Context, login string) (*domain.Usuario, error)
	AtualizarUltimoAcesso(ctx context.Context, usuarioID string) error
}

type AuthService struct {
	repo   UsuarioProvider
	tokens *auth.TokenService
	trail  audit.Registrador
	logger *zap.Logger
}

func NewAuthService(repo UsuarioProvider, tokens *auth.TokenService, trail audit.Registrador, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		trail:  trail,
		logger: logger.Named("auth"),
	}
}

// Autenticar executa o fluxo de login e devolve o perfil público e o token
// assinado. Falha fechado em cada passo; toda tentativa gera um evento de
// auditoria via Trail (best-effort, nunca bloqueia a decisão).
//
// A resposta é idêntica para "usuário não existe/inativo" e "senha errada";
// a distinção vive apenas no motivo do evento de auditoria.
func (s *AuthService) Autenticar(ctx context.Context, req domain.LoginRequest, ip, userAgent string) (*domain.PerfilUsuario, string, error) {
	// 1. Presença dos campos
	if req.Login == "" || req.Senha == "" {
		return nil, "", ErrCamposObrigatorios
	}

	// 2. Usuário ativo
	usuario, err := s.repo.GetUsuarioPorLogin(ctx, req.Login)
	if err != nil {
		return nil, "", fmt.Errorf("falha ao buscar usuario: %w", err)
	}
	if usuario == nil || !usuario.Ativo {
		s.registrar(nil, false, audit.MotivoUsuarioNaoEncontrado, ip, userAgent)
		return nil, "", ErrCredenciaisInvalidas
	}

	// 3. Comparação de senha em tempo constante (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(req.Senha)); err != nil {
		s.registrar(&usuario.ID, false, audit.MotivoSenhaIncorreta, ip, userAgent)
		return nil, "", ErrCredenciaisInvalidas
	}

	// 4. Permissões efetivas do cargo
	permissoes := auth.PermissoesDoCargo(usuario.Cargo)

	// 5. Emissão do token
	claims := &domain.Claims{
		UserID:     usuario.ID,
		Login:      usuario.Login,
		Cargo:      usuario.Cargo,
		Permissoes: permissoes,
	}
	token, err := s.tokens.Mint(claims, s.tokens.TTL())
	if err != nil {
		return nil, "", fmt.Errorf("falha ao emitir token: %w", err)
	}

	// 6. Último acesso
	if err := s.repo.AtualizarUltimoAcesso(ctx, usuario.ID); err != nil {
		return nil, "", fmt.Errorf("falha ao atualizar ultimo acesso: %w", err)
	}

	// 7. Auditoria de sucesso
	s.registrar(&usuario.ID, true, "", ip, userAgent)

	s.logger.Info("login realizado",
		zap.String("usuario", usuario.ID),
		zap.String("cargo", string(usuario.Cargo)))

	return usuario.Perfil(permissoes), token, nil
}

func (s *AuthService) registrar(usuarioID *string, sucesso bool, motivo, ip, userAgent string) {
	s.trail.Registrar(audit.EventoLogin{
		ID:          uuid.NewString(),
		UsuarioID:   usuarioID,
		Sucesso:     sucesso,
		MotivoFalha: motivo,
		IP:          ip,
		UserAgent:   userAgent,
	})
}
