package repository

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// TransactionManager runs multi-row writes in one database transaction,
// handed to repositories through the context. The whole-set swaps in this
// module depend on it: bulk step replacement (delete the flow's steps, then
// insert the accepted rows) and role/permission assignment (clear the link
// set, then write the new one) must either land completely or leave the
// previous set untouched.
type TransactionManager interface {
	// RunInTx begins a transaction, calls fn with a context carrying it,
	// and commits on nil or rolls back on error. Repository calls made
	// with txCtx join the transaction via GetDB.
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(txCtx)
	})
}

// GetDB returns the transaction carried by ctx, or rootDB outside one.
// Every repository routes its queries through this, so the same repository
// method works inside a step-replacement transaction and out.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
