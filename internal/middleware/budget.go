package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
	"cashtrackr/internal/services"
)

// BudgetKey is the Gin context key holding the resolved budget.
const BudgetKey = "budget"

// ValidateBudgetID rejects budget path parameters that are not positive
// integers. Shape violations report a field-level validation error rather
// than a generic failure.
func ValidateBudgetID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("budgetId"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"msg": "ID no valid"}},
			})
			return
		}
		if id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"msg": "ID must be greater than 0"}},
			})
			return
		}
		c.Next()
	}
}

// BudgetExists resolves the budget path parameter and attaches the budget to
// the request context. Runs after ValidateBudgetID.
func BudgetExists(budgetService services.BudgetServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("budgetId"), 10, 64)

		budget, err := budgetService.FindBudgetByID(uint(id))
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

		c.Set(BudgetKey, budget)
		c.Next()
	}
}

// HasAccessToBudget compares the resolved budget's owner against the
// authenticated user. Runs after Authenticate and BudgetExists.
func HasAccessToBudget() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			abortWithAppError(c, apperrors.ErrNotAuthorized)
			return
		}

		budget, err := BudgetFromContext(c)
		if err != nil {
			abortWithAppError(c, apperrors.ErrBudgetNotFound)
			return
		}

		if budget.UserID != user.ID {
			abortWithAppError(c, apperrors.ErrBudgetAccess)
			return
		}

		c.Next()
	}
}

// BudgetFromContext returns the budget attached by BudgetExists.
func BudgetFromContext(c *gin.Context) (*models.Budget, error) {
	v, exists := c.Get(BudgetKey)
	if !exists {
		return nil, apperrors.ErrBudgetNotFound
	}
	budget, ok := v.(*models.Budget)
	if !ok {
		return nil, apperrors.ErrBudgetNotFound
	}
	return budget, nil
}
