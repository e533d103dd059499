package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
	"cashtrackr/internal/services"
)

// ExpenseKey is the Gin context key holding the resolved expense.
const ExpenseKey = "expense"

// ValidateExpenseID rejects expense path parameters that are not positive
// integers.
func ValidateExpenseID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("expenseId"), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"msg": "Id not valid"}},
			})
			return
		}
		c.Next()
	}
}

// ExpenseExists resolves the expense path parameter and attaches the expense
// to the request context. The expense must belong to the budget already
// resolved for the route; one that hangs off a different budget is treated
// as not found so the budget ownership check cannot be sidestepped.
func ExpenseExists(expenseService services.ExpenseServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("expenseId"), 10, 64)

		expense, err := expenseService.FindExpenseByID(uint(id))
		if err != nil {
			var appErr *apperrors.AppError
			if e, ok := err.(*apperrors.AppError); ok {
				appErr = e
			} else {
				appErr = apperrors.ErrInternalServer
			}
			abortWithAppError(c, appErr)
			return
		}

		budget, err := BudgetFromContext(c)
		if err != nil || expense.BudgetID != budget.ID {
			abortWithAppError(c, apperrors.ErrExpenseNotFound)
			return
		}

		c.Set(ExpenseKey, expense)
		c.Next()
	}
}

// ExpenseFromContext returns the expense attached by ExpenseExists.
func ExpenseFromContext(c *gin.Context) (*models.Expense, error) {
	v, exists := c.Get(ExpenseKey)
	if !exists {
		return nil, apperrors.ErrExpenseNotFound
	}
	expense, ok := v.(*models.Expense)
	if !ok {
		return nil, apperrors.ErrExpenseNotFound
	}
	return expense, nil
}
