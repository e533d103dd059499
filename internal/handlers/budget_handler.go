package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/pagination"
	"cashtrackr/internal/services"
)

// BudgetHandler handles budget CRUD. Budget resolution and the ownership
// check happen in the route middleware chain before any of these run.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update payload for a budget.
type BudgetRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

var budgetValidationMessages = map[string]string{
	"Name":   "Name is required",
	"Amount": "amount must be greater than 0",
}

// GetBudgets lists the requester's budgets, newest first.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetUserBudgets(user.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CreateBudget creates a budget owned by the requester.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, budgetValidationMessages)
		return
	}

	if _, err := h.budgetService.CreateBudget(user.ID, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Budget created succesfully"})
}

// GetBudgetByID returns the resolved budget with its expenses preloaded.
func (h *BudgetHandler) GetBudgetByID(c *gin.Context) {
	budget, err := middleware.BudgetFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	full, err := h.budgetService.GetBudgetWithExpenses(budget.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": full})
}

// UpdateBudgetByID rewrites the resolved budget's name and amount.
func (h *BudgetHandler) UpdateBudgetByID(c *gin.Context) {
	budget, err := middleware.BudgetFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, budgetValidationMessages)
		return
	}

	if err := h.budgetService.UpdateBudget(budget, req.Name, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "budget updated succesfully"})
}

// DeleteBudgetByID removes the resolved budget and its expenses.
func (h *BudgetHandler) DeleteBudgetByID(c *gin.Context) {
	budget, err := middleware.BudgetFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budget); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "budget deleted succesfully"})
}
