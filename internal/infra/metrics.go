package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: duração da requisição HTTP
	RequestDuration *prometheus.HistogramVec

	// Logins por resultado (sucesso, credenciais, validacao, erro)
	LoginTotal *prometheus.CounterVec

	// Tokens rejeitados pelo middleware de sessão (fail-open observável)
	TokenInvalido prometheus.Counter

	// Negações do gate de autorização
	AcessoNegado *prometheus.CounterVec

	// Ocupação do buffer de auditoria (backpressure)
	AuditBufferFill prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern: sem registry, usa um local desconectado
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gestor_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"path", "status"}),

		LoginTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "gestor_login_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"resultado"}),

		TokenInvalido: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "gestor_token_invalido_total",
			Help: "Session tokens rejected by the middleware.",
		}),

		AcessoNegado: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "gestor_acesso_negado_total",
			Help: "Authorization denials by resource.",
		}, []string{"recurso"}),

		AuditBufferFill: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "gestor_audit_buffer_utilization",
			Help: "Current number of events in the audit buffer.",
		}),
	}
}
