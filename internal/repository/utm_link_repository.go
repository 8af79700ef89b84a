package repository

import (
	"context"

	"gharplans/internal/domain/model"
)

type UTMLinkFilter struct {
	ID         *int64
	Source     string
	CouponCode string
	Offset     int
	Limit      int
}

type UTMLinkRepository interface {
	Create(ctx context.Context, link model.UTMLink) (model.UTMLink, error)
	List(ctx context.Context, f UTMLinkFilter) ([]model.UTMLink, error)
}
