package models

// User represents an account holder. Token carries the 6-digit confirmation
// or password-reset code and is NULL whenever no such operation is pending.
// Email matching is case-sensitive: addresses are stored exactly as given.
type User struct {
	Base
	Name      string   `gorm:"size:50;not null" json:"name"`
	Email     string   `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"size:60;not null" json:"-"`
	Token     *string  `gorm:"size:6" json:"-"`
	Confirmed bool     `gorm:"default:false" json:"-"`
	Budgets   []Budget `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}
