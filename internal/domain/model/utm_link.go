package model

import "time"

// 広告用のUTM付きリンク
type UTMLink struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BaseURL    string    `gorm:"column:base_url;type:varchar(1000);not null" json:"baseUrl"`
	Source     string    `gorm:"type:varchar(255);not null;index" json:"source"`
	Medium     string    `gorm:"type:varchar(255);not null" json:"medium"`
	Campaign   string    `gorm:"type:varchar(255);not null" json:"campaign"`
	CouponCode *string   `gorm:"type:varchar(100);index" json:"couponCode"`
	UTMURL     string    `gorm:"column:utm_url;type:text;not null" json:"utmUrl"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (UTMLink) TableName() string {
	return "utm_links"
}
