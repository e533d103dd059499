package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"cashtrackr/internal/middleware"
	"cashtrackr/internal/models"
	"cashtrackr/internal/pagination"
)

type mockExpenseService struct {
	createExpenseFn     func(budgetID uint, name string, amount float64) (*models.Expense, error)
	getBudgetExpensesFn func(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	findExpenseByIDFn   func(expenseID uint) (*models.Expense, error)
	updateExpenseFn     func(expense *models.Expense, name string, amount float64) error
	deleteExpenseFn     func(expense *models.Expense) error
}

func (m *mockExpenseService) CreateExpense(budgetID uint, name string, amount float64) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(budgetID, name, amount)
	}
	return &models.Expense{Base: models.Base{ID: 1}, Name: name, Amount: amount, BudgetID: budgetID}, nil
}

func (m *mockExpenseService) GetBudgetExpenses(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.getBudgetExpensesFn != nil {
		return m.getBudgetExpensesFn(budgetID, page)
	}
	return &pagination.PageResponse[models.Expense]{Data: []models.Expense{}}, nil
}

func (m *mockExpenseService) FindExpenseByID(expenseID uint) (*models.Expense, error) {
	if m.findExpenseByIDFn != nil {
		return m.findExpenseByIDFn(expenseID)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}}, nil
}

func (m *mockExpenseService) UpdateExpense(expense *models.Expense, name string, amount float64) error {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(expense, name, amount)
	}
	return nil
}

func (m *mockExpenseService) DeleteExpense(expense *models.Expense) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(expense)
	}
	return nil
}

func injectExpense(expense *models.Expense) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ExpenseKey, expense)
		c.Next()
	}
}

func setupExpenseRouter(handler *ExpenseHandler, budget *models.Budget, expense *models.Expense) *gin.Engine {
	r := gin.New()
	r.GET("/budgets/:budgetId/expenses", injectBudget(budget), handler.GetExpenses)
	r.POST("/budgets/:budgetId/expenses", injectBudget(budget), handler.CreateExpense)
	r.GET("/budgets/:budgetId/expenses/:expenseId", injectBudget(budget), injectExpense(expense), handler.GetExpenseByID)
	r.PUT("/budgets/:budgetId/expenses/:expenseId", injectBudget(budget), injectExpense(expense), handler.UpdateExpenseByID)
	r.DELETE("/budgets/:budgetId/expenses/:expenseId", injectBudget(budget), injectExpense(expense), handler.DeleteExpenseByID)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	budget := &models.Budget{Base: models.Base{ID: 5}, UserID: 1}

	t.Run("returns 201 and records under the resolved budget", func(t *testing.T) {
		var gotBudgetID uint
		svc := &mockExpenseService{
			createExpenseFn: func(budgetID uint, name string, amount float64) (*models.Expense, error) {
				gotBudgetID = budgetID
				return &models.Expense{Base: models.Base{ID: 1}, Name: name, Amount: amount, BudgetID: budgetID}, nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc), budget, nil)

		rec := doRequest(r, "POST", "/budgets/5/expenses", `{"name":"Cafe","amount":30}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		assertMessage(t, parseJSON(t, rec), "expense created")
		if gotBudgetID != 5 {
			t.Errorf("expected expense under budget 5, got %d", gotBudgetID)
		}
	})

	t.Run("returns 400 on invalid payload", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}), budget, nil)

		rec := doRequest(r, "POST", "/budgets/5/expenses", `{"amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertValidationMsg(t, result, "Expense name is required")
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}), budget, nil)

		rec := doRequest(r, "POST", "/budgets/5/expenses", `{"name":"Cafe","amount":-5}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertValidationMsg(t, parseJSON(t, rec), "Expense amount must be greater than 0")
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	budget := &models.Budget{Base: models.Base{ID: 5}, UserID: 1}
	var gotBudgetID uint
	svc := &mockExpenseService{
		getBudgetExpensesFn: func(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
			gotBudgetID = budgetID
			return &pagination.PageResponse[models.Expense]{
				Data:       []models.Expense{{Base: models.Base{ID: 2}, Name: "Cafe", Amount: 30, BudgetID: budgetID}},
				TotalItems: 1,
			}, nil
		},
	}
	r := setupExpenseRouter(NewExpenseHandler(svc), budget, nil)

	rec := doRequest(r, "GET", "/budgets/5/expenses", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotBudgetID != 5 {
		t.Errorf("expected listing scoped to budget 5, got %d", gotBudgetID)
	}
	result := parseJSON(t, rec)
	items, ok := result["data"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 item, got %v", result["data"])
	}
}

func TestExpenseHandler_GetExpenseByID(t *testing.T) {
	budget := &models.Budget{Base: models.Base{ID: 5}, UserID: 1}
	expense := &models.Expense{Base: models.Base{ID: 9}, Name: "Cafe", Amount: 30, BudgetID: 5}
	r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}), budget, expense)

	rec := doRequest(r, "GET", "/budgets/5/expenses/9", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["name"] != "Cafe" {
		t.Errorf("expected expense Cafe, got %v", result["name"])
	}
}

func TestExpenseHandler_UpdateExpenseByID(t *testing.T) {
	budget := &models.Budget{Base: models.Base{ID: 5}, UserID: 1}
	expense := &models.Expense{Base: models.Base{ID: 9}, BudgetID: 5}

	t.Run("returns 201 on success", func(t *testing.T) {
		var gotAmount float64
		svc := &mockExpenseService{
			updateExpenseFn: func(e *models.Expense, name string, amount float64) error {
				if e.ID != 9 {
					t.Errorf("expected resolved expense 9, got %d", e.ID)
				}
				gotAmount = amount
				return nil
			},
		}
		r := setupExpenseRouter(NewExpenseHandler(svc), budget, expense)

		rec := doRequest(r, "PUT", "/budgets/5/expenses/9", `{"name":"Cafe Grande","amount":45}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		assertMessage(t, parseJSON(t, rec), "Updated successfully")
		if gotAmount != 45 {
			t.Errorf("expected amount 45, got %v", gotAmount)
		}
	})

	t.Run("returns 400 on invalid payload", func(t *testing.T) {
		r := setupExpenseRouter(NewExpenseHandler(&mockExpenseService{}), budget, expense)

		rec := doRequest(r, "PUT", "/budgets/5/expenses/9", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_DeleteExpenseByID(t *testing.T) {
	budget := &models.Budget{Base: models.Base{ID: 5}, UserID: 1}
	expense := &models.Expense{Base: models.Base{ID: 9}, BudgetID: 5}
	var deleted uint
	svc := &mockExpenseService{
		deleteExpenseFn: func(e *models.Expense) error {
			deleted = e.ID
			return nil
		},
	}
	r := setupExpenseRouter(NewExpenseHandler(svc), budget, expense)

	rec := doRequest(r, "DELETE", "/budgets/5/expenses/9", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	assertMessage(t, parseJSON(t, rec), "Expense deleted successfully")
	if deleted != 9 {
		t.Errorf("expected delete of expense 9, got %d", deleted)
	}
}
