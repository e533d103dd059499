package models

// Budget represents a spending plan owned by a single user. UserID is set at
// creation and never updated afterwards.
type Budget struct {
	Base
	Name     string    `gorm:"size:100;not null" json:"name"`
	Amount   float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	UserID   uint      `gorm:"not null;index" json:"userId"`
	Expenses []Expense `gorm:"foreignKey:BudgetID" json:"expenses,omitempty"`
}
