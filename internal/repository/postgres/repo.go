package postgres

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver Postgres
)

// Repo agrupa todas as queries do backend sobre um único pool.
type Repo struct {
	db *sql.DB
}

// NewRepo abre o pool. A conectividade é checada em main via Ping.
func NewRepo(connString string, maxConns, minConns int) *Repo {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		log.Fatal(err)
	}
	if maxConns <= 0 {
		maxConns = 25
	}
	if minConns <= 0 {
		minConns = 5
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(minConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &Repo{db: db}
}

// NewRepoComDB injeta um *sql.DB pronto (testes com sqlmock).
func NewRepoComDB(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Ping verifica a disponibilidade do banco no start.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repo) Close() error {
	return r.db.Close()
}
