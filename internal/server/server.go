package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/handler"
	"github.com/construsys/gestor/internal/infra"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	router  *chi.Mux
	logger  *zap.Logger
	metrics *infra.Metrics

	tokens *auth.TokenService

	authHandler     *handler.AuthHandler
	dashHandler     *handler.DashboardHandler
	cadastroHandler *handler.CadastroHandler
	acessoHandler   *handler.AcessoHandler
}

// NewServer monta o roteador com todas as dependências injetadas.
func NewServer(
	logger *zap.Logger,
	metrics *infra.Metrics,
	reg *prometheus.Registry,
	tokens *auth.TokenService,
	authH *handler.AuthHandler,
	dashH *handler.DashboardHandler,
	cadastroH *handler.CadastroHandler,
	acessoH *handler.AcessoHandler,
) *Server {
	s := &Server{
		router:          chi.NewRouter(),
		logger:          logger.Named("http"),
		metrics:         metrics,
		tokens:          tokens,
		authHandler:     authH,
		dashHandler:     dashH,
		cadastroHandler: cadastroH,
		acessoHandler:   acessoH,
	}

	s.routes(reg)
	return s
}

func (s *Server) routes(reg *prometheus.Registry) {
	r := s.router

	// --- 1. Middleware de infraestrutura (para todos) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.duracao)

	// --- 2. Sessão: roda em toda requisição; redireciona caminhos
	//        protegidos sem sessão válida para /auth/login ---
	r.Use(auth.NewMiddleware(s.tokens, s.logger, s.metrics.TokenInvalido))

	// --- 3. Rotas públicas ---
	r.Group(func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		// página de login renderizada pelo front; o backend só precisa
		// responder algo neste caminho para o redirect ter destino
		r.Get("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r.Post("/api/auth/login", s.authHandler.Login)
		r.Get("/api/auth/sessao", s.authHandler.Sessao)
	})

	// --- 4. Perímetro protegido ---
	r.Group(func(r chi.Router) {
		r.Post("/api/auth/logout", s.authHandler.Logout)

		r.Get("/api/dashboard/resumo", s.dashHandler.Resumo)

		r.Route("/api/clientes", func(r chi.Router) {
			r.Get("/", s.cadastroHandler.ListarClientes)
			r.Get("/{id}", s.cadastroHandler.GetCliente)
		})
		r.Route("/api/obras", func(r chi.Router) {
			r.Get("/", s.cadastroHandler.ListarObras)
			r.Get("/{id}", s.cadastroHandler.GetObra)
		})
		r.Get("/api/pagamentos", s.cadastroHandler.ListarPagamentos)

		r.Route("/api/usuarios/{id}/acessos", func(r chi.Router) {
			r.Post("/", s.acessoHandler.Conceder)
			r.Delete("/", s.acessoHandler.Revogar)
		})
	})
}

// duracao observa a latência por rota e status.
func (s *Server) duracao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rota := chi.RouteContext(r.Context()).RoutePattern()
		if rota == "" {
			rota = r.URL.Path
		}
		s.metrics.RequestDuration.
			WithLabelValues(rota, strconv.Itoa(ww.Status())).
			Observe(time.Since(inicio).Seconds())
	})
}

// ServeHTTP permite usar o Server como http.Handler padrão.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
