package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cashtrackr/internal/handlers"
	"cashtrackr/internal/logger"
	"cashtrackr/internal/mailer"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/models"
	"cashtrackr/internal/services"
)

// testApp holds the full application stack for integration tests. Outgoing
// email is captured by Mail instead of dialing SMTP.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Mail   *capturingMailer
}

// capturingMailer records every message the app tries to send.
type capturingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *capturingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Last returns the most recently captured message.
func (m *capturingMailer) Last(t *testing.T) mailer.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no email was sent")
	}
	return m.sent[len(m.sent)-1]
}

var tokenPattern = regexp.MustCompile(`\b\d{6}\b`)

// Code extracts the 6-digit code from the most recent email body.
func (m *capturingMailer) Code(t *testing.T) string {
	t.Helper()
	code := tokenPattern.FindString(m.Last(t).HTML)
	if code == "" {
		t.Fatalf("no 6-digit code found in email body: %s", m.Last(t).HTML)
	}
	return code
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Budget{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates the full stack backed by an isolated in-memory SQLite,
// wired the same way as the server binary minus rate limiting.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	mail := &capturingMailer{}
	authEmail := mailer.NewAuthEmail(mail, "CashTrackr <admin@cashtrackr.com>")

	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)

	authHandler := handlers.NewAuthHandler(userService, authEmail)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/create-account", authHandler.CreateAccount)
	auth.POST("/confirm-account", authHandler.ConfirmAccount)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/validate-token", authHandler.ValidateToken)
	auth.POST("/reset-password/:token", authHandler.ResetPasswordWithToken)

	authed := auth.Group("", middleware.Authenticate(userService))
	authed.GET("/user", authHandler.User)
	authed.PUT("/user", authHandler.UpdateUser)
	authed.POST("/update-password", authHandler.UpdateCurrentUserPassword)
	authed.POST("/check-password", authHandler.CheckPassword)

	budgets := api.Group("/budgets", middleware.Authenticate(userService))
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.CreateBudget)

	scoped := budgets.Group("/:budgetId",
		middleware.ValidateBudgetID(),
		middleware.BudgetExists(budgetService),
		middleware.HasAccessToBudget(),
	)
	scoped.GET("", budgetHandler.GetBudgetByID)
	scoped.PUT("", budgetHandler.UpdateBudgetByID)
	scoped.DELETE("", budgetHandler.DeleteBudgetByID)

	scoped.GET("/expenses", expenseHandler.GetExpenses)
	scoped.POST("/expenses", expenseHandler.CreateExpense)

	expense := scoped.Group("/expenses/:expenseId",
		middleware.ValidateExpenseID(),
		middleware.ExpenseExists(expenseService),
	)
	expense.GET("", expenseHandler.GetExpenseByID)
	expense.PUT("", expenseHandler.UpdateExpenseByID)
	expense.DELETE("", expenseHandler.DeleteExpenseByID)

	return &testApp{DB: db, Router: router, Mail: mail}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerConfirmedUser runs the register and confirm steps for a fresh user.
func (app *testApp) registerConfirmedUser(t *testing.T, name, email, password string) {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	rec := app.request("POST", "/api/auth/create-account", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create-account failed: %d %s", rec.Code, rec.Body.String())
	}

	code := app.Mail.Code(t)
	rec = app.request("POST", "/api/auth/confirm-account", fmt.Sprintf(`{"token":%q}`, code), "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirm-account failed: %d %s", rec.Code, rec.Body.String())
	}
}

// loginUser logs in and returns the session token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	token, ok := parseJSON(t, rec)["token"].(string)
	if !ok || token == "" {
		t.Fatal("expected non-empty token from login")
	}
	return token
}

// newSessionUser registers, confirms, and logs in a user in one step.
func (app *testApp) newSessionUser(t *testing.T, name, email string) string {
	t.Helper()
	app.registerConfirmedUser(t, name, email, "password123")
	return app.loginUser(t, email, "password123")
}

// createBudget creates a budget for the session and returns its ID.
func (app *testApp) createBudget(t *testing.T, token, name string, amount float64) uint {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"amount":%v}`, name, amount)
	rec := app.request("POST", "/api/budgets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}

	var budget models.Budget
	if err := app.DB.Where("name = ?", name).Order("id DESC").First(&budget).Error; err != nil {
		t.Fatalf("created budget not found: %v", err)
	}
	return budget.ID
}

// createExpense records an expense under a budget and returns its ID.
func (app *testApp) createExpense(t *testing.T, token string, budgetID uint, name string, amount float64) uint {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"amount":%v}`, name, amount)
	rec := app.request("POST", fmt.Sprintf("/api/budgets/%d/expenses", budgetID), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}

	var expense models.Expense
	if err := app.DB.Where("name = ?", name).Order("id DESC").First(&expense).Error; err != nil {
		t.Fatalf("created expense not found: %v", err)
	}
	return expense.ID
}
