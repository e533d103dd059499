package services

import (
	"cashtrackr/internal/models"
	"cashtrackr/internal/pagination"
)

// UserServicer defines the contract for the account lifecycle.
type UserServicer interface {
	// CreateUser registers an unconfirmed user with a fresh confirmation
	// token. The returned user carries the token so the caller can mail it.
	CreateUser(name, email, password string) (*models.User, error)
	// ConfirmAccount consumes a confirmation token: flips confirmed and
	// clears the token in a single row update.
	ConfirmAccount(token string) error
	// AttemptLogin checks existence, confirmation state, and password, in
	// that order, and returns the user on success.
	AttemptLogin(email, password string) (*models.User, error)
	// ForgotPassword reissues the user's token and returns the user so the
	// caller can mail the reset code. Confirmation state is untouched.
	ForgotPassword(email string) (*models.User, error)
	// ValidateToken reports whether a reset token matches any user.
	ValidateToken(token string) error
	// ResetPasswordWithToken consumes a reset token and replaces the
	// password hash.
	ResetPasswordWithToken(token, password string) error
	// UpdatePassword replaces the password after checking the current one.
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	// CheckPassword verifies the user's password without changing state.
	CheckPassword(userID uint, password string) error
	// UpdateUser changes name and email, rejecting duplicate emails.
	UpdateUser(userID uint, name, email string) error
	// GetAuthUserByID loads id, name, and email only, for request identity.
	GetAuthUserByID(id uint) (*models.User, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, name string, amount float64) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	// FindBudgetByID resolves a budget with no ownership filter; the
	// ownership check is a separate middleware step.
	FindBudgetByID(budgetID uint) (*models.Budget, error)
	GetBudgetWithExpenses(budgetID uint) (*models.Budget, error)
	UpdateBudget(budget *models.Budget, name string, amount float64) error
	// DeleteBudget removes the budget's expenses and the budget itself in
	// one transaction.
	DeleteBudget(budget *models.Budget) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(budgetID uint, name string, amount float64) (*models.Expense, error)
	GetBudgetExpenses(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	FindExpenseByID(expenseID uint) (*models.Expense, error)
	UpdateExpense(expense *models.Expense, name string, amount float64) error
	DeleteExpense(expense *models.Expense) error
}
