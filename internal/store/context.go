package store

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// ContextWithTx returns a context carrying an open gorm transaction
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// DBFromContext returns the transaction carried by ctx, or db when there is none
func DBFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InTx checks if ctx carries a transaction
func InTx(ctx context.Context) bool {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return ok && tx != nil
}
