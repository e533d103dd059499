package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/pagination"
	"cashtrackr/internal/services"
)

// ExpenseHandler handles expense CRUD nested under a budget. The route
// middleware has already resolved the budget, verified ownership, and (for
// expense-scoped routes) resolved the expense.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update payload for an expense.
type ExpenseRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

var expenseValidationMessages = map[string]string{
	"Name":   "Expense name is required",
	"Amount": "Expense amount must be greater than 0",
}

// GetExpenses lists the resolved budget's expenses, newest first.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	budget, err := middleware.BudgetFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetBudgetExpenses(budget.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CreateExpense records a new expense under the resolved budget.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	budget, err := middleware.BudgetFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, expenseValidationMessages)
		return
	}

	if _, err := h.expenseService.CreateExpense(budget.ID, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "expense created"})
}

// GetExpenseByID returns the resolved expense.
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	expense, err := middleware.ExpenseFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpenseByID rewrites the resolved expense's name and amount.
func (h *ExpenseHandler) UpdateExpenseByID(c *gin.Context) {
	expense, err := middleware.ExpenseFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, expenseValidationMessages)
		return
	}

	if err := h.expenseService.UpdateExpense(expense, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Updated successfully"})
}

// DeleteExpenseByID removes the resolved expense.
func (h *ExpenseHandler) DeleteExpenseByID(c *gin.Context) {
	expense, err := middleware.ExpenseFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(expense); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Expense deleted successfully"})
}
