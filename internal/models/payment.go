package models

import (
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
)

type Payment struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Amount     float64 `json:"amount"`
	Screenshot string  `json:"screenshot"`
	Status     string  `gorm:"default:Pending;index" json:"status"`
	CreatedAt  int64   `gorm:"autoCreateTime" json:"created_at"` // unix seconds
}

func (Payment) TableName() string { return "payments" }

func (p Payment) IsPending() bool {
	return p.Status == StatusPending
}

// CreatedTime returns CreatedAt as a local time.
func (p Payment) CreatedTime() time.Time {
	return time.Unix(p.CreatedAt, 0)
}
