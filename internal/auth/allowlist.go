package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AllowListRepo lê a allow-list persistida (tabela usuario_acessos).
type AllowListRepo interface {
	ListarAcessos(ctx context.Context, usuarioID, recurso string) ([]string, error)
}

// comandosRedis cobre os comandos que o cache usa. *redis.Client satisfaz.
type comandosRedis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AllowListCache guarda as allow-lists em Redis com TTL curto; no miss busca
// no Postgres e repovoa. Falha do Redis degrada para leitura direta do banco.
type AllowListCache struct {
	repo   AllowListRepo
	rdb    comandosRedis
	ttl    time.Duration
	logger *zap.Logger
}

func NewAllowListCache(repo AllowListRepo, rdb comandosRedis, ttl time.Duration, logger *zap.Logger) *AllowListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AllowListCache{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.Named("allowlist"),
	}
}

func chaveAcesso(usuarioID, recurso string) string {
	return fmt.Sprintf("acl:%s:%s", usuarioID, recurso)
}

func (c *AllowListCache) InstanciasPermitidas(ctx context.Context, usuarioID, recurso string) ([]string, error) {
	chave := chaveAcesso(usuarioID, recurso)

	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, chave).Result()
		if err == nil {
			var ids []string
			if err := json.Unmarshal([]byte(raw), &ids); err == nil {
				return ids, nil
			}
			// Entrada corrompida: descarta e segue para o banco
			c.rdb.Del(ctx, chave)
		} else if err != redis.Nil {
			c.logger.Warn("cache indisponivel, lendo do banco", zap.Error(err))
		}
	}

	ids, err := c.repo.ListarAcessos(ctx, usuarioID, recurso)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if raw, err := json.Marshal(ids); err == nil {
			if err := c.rdb.Set(ctx, chave, raw, c.ttl).Err(); err != nil {
				c.logger.Warn("falha ao popular cache", zap.Error(err))
			}
		}
	}
	return ids, nil
}

// Invalidar remove as entradas do usuário após mudança de acesso.
func (c *AllowListCache) Invalidar(ctx context.Context, usuarioID string) {
	if c.rdb == nil {
		return
	}
	for _, recurso := range todosRecursos {
		if err := c.rdb.Del(ctx, chaveAcesso(usuarioID, recurso)).Err(); err != nil {
			c.logger.Warn("falha ao invalidar cache", zap.String("usuario", usuarioID), zap.Error(err))
			return
		}
	}
}
