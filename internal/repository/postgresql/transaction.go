package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kilangpay/payslip-backend-go/internal/pkg/database"
)

type txCtxKey struct{}

// WithQuerierTx returns a context that routes every repository query through
// tx instead of the pool.
func WithQuerierTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// GetQuerier resolves the active transaction from ctx, falling back to the
// connection pool.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
