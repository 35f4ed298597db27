package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tahsinhasem/MonopolyDeal/internal/config"
	"github.com/tahsinhasem/MonopolyDeal/internal/game"
)

// NewDB builds the Postgres connection pool from configuration.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("database connection pool initialized",
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Int32("min_conns", poolCfg.MinConns),
	)
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id      UUID PRIMARY KEY,
	code    TEXT NOT NULL,
	state   JSONB NOT NULL,
	version BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_code_idx ON games (code);
`

// PostgresStore persists each game as a single JSONB document with a
// version column for optimistic concurrency, mirroring how the engine was
// originally backed by a document store.
type PostgresStore struct {
	pool   *pgxpool.Pool
	notify *notifier
	logger *zap.Logger
}

var _ GameStore = (*PostgresStore)(nil)

// NewPostgresStore creates the store and ensures the schema exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool, notify: newNotifier(), logger: logger}, nil
}

func (s *PostgresStore) Create(ctx context.Context, state *game.GameState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", state.ID, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO games (id, code, state, version) VALUES ($1, $2, $3, $4)`,
		state.ID, state.Code, doc, state.Version,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", state.ID, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, gameID string) (*game.GameState, error) {
	return s.loadRow(ctx, `SELECT state, version FROM games WHERE id = $1`, gameID)
}

func (s *PostgresStore) LoadByCode(ctx context.Context, code string) (*game.GameState, error) {
	// Codes are generated uppercase; match the in-memory store's
	// case-insensitive lookup.
	return s.loadRow(ctx, `SELECT state, version FROM games WHERE code = upper($1)`, code)
}

func (s *PostgresStore) loadRow(ctx context.Context, query, arg string) (*game.GameState, error) {
	var doc []byte
	var version int64
	err := s.pool.QueryRow(ctx, query, arg).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	var state game.GameState
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	// The version column is authoritative over the document copy.
	state.Version = version
	return &state, nil
}

// Save commits the state if the stored version still matches
// state.Version, then publishes the committed snapshot to subscribers.
func (s *PostgresStore) Save(ctx context.Context, state *game.GameState) error {
	committed := state.Clone()
	committed.Version = state.Version + 1

	doc, err := json.Marshal(committed)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", state.ID, err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE games SET state = $1, version = version + 1 WHERE id = $2 AND version = $3`,
		doc, state.ID, state.Version,
	)
	if err != nil {
		return fmt.Errorf("update game %s: %w", state.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	if violations := game.CheckInvariants(committed); len(violations) > 0 {
		for _, v := range violations {
			s.logger.Error("invariant violation in committed state",
				zap.String("game_id", state.ID),
				zap.String("rule", v.Rule),
				zap.String("detail", v.Detail),
			)
		}
	}
	state.Version = committed.Version
	s.notify.publish(committed)
	return nil
}

func (s *PostgresStore) Subscribe(gameID string, fn func(*game.GameState)) func() {
	return s.notify.subscribe(gameID, fn)
}
