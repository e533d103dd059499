package models

import "time"

// Base contains common columns for all tables. Timestamps serialize as
// camelCase to match the client contract.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
