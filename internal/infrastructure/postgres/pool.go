package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/pkg/config"
)

const applicationName = "almacen-api"

// NewPool crea el pool de PostgreSQL del almacén.
//
// Cada conexión registra el codec NUMERIC ↔ decimal y fija lock_timeout, de modo que una
// salida que espera la fila de inventario de otra transacción falla en vez de colgarse.
// El dial prefiere IPv4 (Docker suele no tener IPv6 y algunos proveedores publican AAAA).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	conn := poolConfig.ConnConfig
	conn.DialFunc = dialPreferIPv4
	if conn.RuntimeParams == nil {
		conn.RuntimeParams = map[string]string{}
	}
	conn.RuntimeParams["application_name"] = applicationName
	if cfg.LockTimeoutMs > 0 {
		conn.RuntimeParams["lock_timeout"] = strconv.Itoa(cfg.LockTimeoutMs)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.AfterConnect = func(_ context.Context, c *pgx.Conn) error {
		pgxdecimal.Register(c.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB (%s): %w", redactDSN(cfg.ConnectionString()), err)
	}
	return pool, nil
}

// dialPreferIPv4 conecta por tcp4 si el host tiene registro A; si no, dial normal.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	if ip := net.ParseIP(host); ip != nil {
		return d.DialContext(ctx, network, addr)
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ips[0].String(), port))
}

// redactDSN oculta la clave para poder loguear el destino de la conexión.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return "dsn"
	}
	return u.Redacted()
}
