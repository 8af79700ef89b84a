package repository

import (
	"context"

	repo "gharplans/internal/repository"

	"gorm.io/gorm"
)

// 1つのtxにぶら下がるrepository
type gormTxRepos struct {
	tx *gorm.DB
}

func (r gormTxRepos) Orders() repo.OrderRepository       { return NewOrderGormRepository(r.tx) }
func (r gormTxRepos) CartItems() repo.CartItemRepository { return NewCartGormRepository(r.tx) }
func (r gormTxRepos) AuditLogs() repo.AuditLogRepository { return NewAuditLogGormRepository(r.tx) }

type TxManagerGorm struct {
	db *gorm.DB
}

var _ repo.TransactionManager = (*TxManagerGorm)(nil)

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返すかpanicしたらrollback
func (m *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormTxRepos{tx: tx})
	})
}
