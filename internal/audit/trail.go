package audit

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// StorageInterface define onde os eventos são persistidos fisicamente.
type StorageInterface interface {
	// WriteBatch grava uma pacote de eventos de uma vez
	WriteBatch(ctx context.Context, eventos []EventoLogin) error
}

// Trail é o gravador assíncrono de auditoria de login.
//
// A escrita é best-effort por contrato: uma falha de insert jamais pode
// derrubar um login bem-sucedido. Por isso o caminho quente só enfileira em
// canal não bloqueante; um worker acumula e grava em lote por timer ou ao
// atingir o tamanho do batch. No Stop o canal é fechado e o buffer drenado
// por completo antes de retornar.
type Trail struct {
	ch     chan EventoLogin
	repo   StorageInterface
	logger *zap.Logger
	wg     sync.WaitGroup

	tamBatch  int
	intervalo time.Duration

	// cb isola o banco: com o Postgres fora, abre e descarta rápido em vez
	// de acumular goroutines presas em timeout
	cb *gobreaker.CircuitBreaker

	bufferFill prometheus.Gauge

	// mu serializa Registrar com o fechamento do canal: enquanto um envio
	// segura o read lock, Stop não consegue fechar
	mu     sync.RWMutex
	closed bool
}

func NewTrail(repo StorageInterface, logger *zap.Logger, tamBuffer, tamBatch int, intervalo time.Duration, bufferFill prometheus.Gauge) *Trail {
	if tamBuffer <= 0 {
		tamBuffer = 1000
	}
	if tamBatch <= 0 {
		tamBatch = 100
	}
	if intervalo <= 0 {
		intervalo = time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "audit-storage",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Trail{
		ch:         make(chan EventoLogin, tamBuffer),
		repo:       repo,
		logger:     logger.Named("audit"),
		tamBatch:   tamBatch,
		intervalo:  intervalo,
		cb:         cb,
		bufferFill: bufferFill,
	}
}

func (t *Trail) Start() {
	t.wg.Add(1)
	go t.worker()
}

// Stop fecha a entrada e espera o worker drenar tudo que restou no canal.
// Chamadas repetidas são inofensivas.
func (t *Trail) Stop() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.logger.Info("encerrando auditoria: drenando buffer")
	close(t.ch)
	t.wg.Wait()
	t.logger.Info("auditoria encerrada")
}

// Registrar enfileira sem bloquear. Buffer cheio ⇒ load shedding: o evento
// vira linha de log estruturado em vez de travar a resposta.
func (t *Trail) Registrar(evento EventoLogin) {
	if evento.CriadoEm.IsZero() {
		evento.CriadoEm = time.Now()
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		t.logger.Warn("evento de auditoria descartado: gravador parando", zap.String("id", evento.ID))
		return
	}

	select {
	case t.ch <- evento:
		if t.bufferFill != nil {
			t.bufferFill.Set(float64(len(t.ch)))
		}
	default:
		t.logger.Error("audit_buffer_overflow",
			zap.Bool("sucesso", evento.Sucesso),
			zap.String("ip", evento.IP))
	}
}

func (t *Trail) worker() {
	defer t.wg.Done()

	batch := make([]EventoLogin, 0, t.tamBatch)
	ticker := time.NewTicker(t.intervalo)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Background: o contexto da aplicação pode já ter sido cancelado
		// durante o drain final
		if err := t.gravar(context.Background(), batch); err != nil {
			t.logger.Error("flush de auditoria falhou", zap.Int("eventos", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case evento, ok := <-t.ch:
			if !ok {
				// canal fechado no Stop: vaza o restante e encerra
				flush()
				t.logger.Info("worker de auditoria finalizado")
				return
			}
			batch = append(batch, evento)
			if len(batch) >= t.tamBatch {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (t *Trail) gravar(ctx context.Context, batch []EventoLogin) error {
	_, err := t.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(3),
		)
		return nil, r.Do(func() error {
			wCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return t.repo.WriteBatch(wCtx, batch)
		})
	})
	return err
}
