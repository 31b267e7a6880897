// Package store persists per-batch report rows to Postgres. Persistence is
// optional: the pipeline runs fully without a database.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nfetools/conciliador/internal/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS conciliacoes (
	batch_id            UUID PRIMARY KEY,
	folder              TEXT NOT NULL,
	status              TEXT NOT NULL,
	divergencia         TEXT,
	valor_compra        NUMERIC(14,2) NOT NULL,
	valor_boleto        NUMERIC(14,2) NOT NULL,
	diferenca           NUMERIC(14,2) NOT NULL,
	vencimento_origem   TEXT,
	numero_nota_origem  TEXT,
	pedido_origem       TEXT,
	processed_at        TIMESTAMPTZ NOT NULL
)`

const insertSQL = `
INSERT INTO conciliacoes (
	batch_id, folder, status, divergencia,
	valor_compra, valor_boleto, diferenca,
	vencimento_origem, numero_nota_origem, pedido_origem, processed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (batch_id) DO NOTHING`

// Store writes verdict rows through a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database and ensures the report table exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create conciliacoes table: %w", err)
	}
	return &Store{pool: pool}, nil
}

// SaveVerdict inserts one report row. Re-processing the same batch id is a
// no-op.
func (s *Store) SaveVerdict(ctx context.Context, verdict *model.Verdict) error {
	_, err := s.pool.Exec(ctx, insertSQL,
		verdict.BatchID,
		verdict.Folder,
		string(verdict.Status),
		verdict.Divergencia(),
		verdict.ValorCompra,
		verdict.ValorBoleto,
		verdict.Diferenca,
		verdict.Inherited.Vencimento,
		verdict.Inherited.NumeroNota,
		verdict.Inherited.NumeroPedido,
		verdict.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verdict %s: %w", verdict.BatchID, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
