package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/config"
)

// Límites del pool.
const (
	poolMaxConns        = 25
	poolMinConns        = 2
	poolMaxConnLifetime = time.Hour
	poolMaxConnIdle     = 30 * time.Minute
	poolHealthCheck     = time.Minute
	poolPingTimeout     = 5 * time.Second
)

// PoolConfig arma la configuración del pool sin conectar: DSN (DATABASE_URL o DB_*),
// statement_timeout por conexión y codec NUMERIC -> decimal.Decimal.
func PoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.StatementTimeoutMs > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = strconv.Itoa(cfg.StatementTimeoutMs)
	}

	pc.MaxConns = poolMaxConns
	pc.MinConns = poolMinConns
	pc.MaxConnLifetime = poolMaxConnLifetime
	pc.MaxConnIdleTime = poolMaxConnIdle
	pc.HealthCheckPeriod = poolHealthCheck

	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// NewPool abre el pool y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, poolPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
