package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID            int64           `gorm:"not null;index" json:"categoryId"`
	Name                  string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug                  string          `gorm:"type:varchar(255);not null;index" json:"slug"`
	Price                 decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Image                 string          `gorm:"type:varchar(500)" json:"image"`
	Description           string          `gorm:"type:text" json:"description"`
	ShortDescription      string          `gorm:"type:text" json:"shortDescription"`
	AdditionalInformation string          `gorm:"type:text" json:"additionalInformation"`
	Status                bool            `gorm:"not null" json:"status"`
	Options               json.RawMessage `gorm:"type:jsonb" json:"options,omitempty"`
	Color                 string          `gorm:"type:varchar(100)" json:"color"`
	CreatedAt             time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}
