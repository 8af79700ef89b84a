package model

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	default:
		return false
	}
}

type Review struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64        `gorm:"not null;index" json:"userId"`
	ProductID int64        `gorm:"not null;index" json:"productId"`
	Rating    int          `gorm:"not null" json:"rating"`
	Review    string       `gorm:"type:text" json:"review"`
	Status    ReviewStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 一覧用。users/products/categoriesをJOINした1行
type ReviewLine struct {
	ID           int64
	Rating       int
	Review       string
	Status       ReviewStatus
	CreatedAt    time.Time
	UserName     string
	UserEmail    string
	ProductName  string
	CategoryName *string
}

// 評価の集計
type RatingSummary struct {
	Average float64
	Count   int64
}
