package router

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finledger/internal/config"
	"finledger/internal/logger"
	"finledger/internal/testutil"
	"finledger/internal/validator"
)

const backupKey = "backup-key"

// testApp holds the full application stack for flow tests.
type testApp struct {
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated, seeded
// in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithKey(t, backupKey)
}

func setupAppWithKey(t *testing.T, apiKey string) *testApp {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:        "flow-test-secret",
		JWTExpirationDur: time.Hour,
		AuthUsername:     "admin",
		AuthPassword:     "secret",
		BackupAPIKey:     apiKey,
	}
	config.Set(cfg)

	db := testutil.SetupSeededTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	svc, err := NewServices(db, cfg)
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}
	return &testApp{Router: New(svc, cfg.BackupAPIKey)}
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

// mustRequest fails the test unless the response has the wanted status.
func (app *testApp) mustRequest(t *testing.T, want int, method, path, body, token string) map[string]interface{} {
	t.Helper()
	rec := app.request(method, path, body, token)
	if rec.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, rec.Code, rec.Body.String())
	}
	if rec.Code == http.StatusNoContent {
		return nil
	}
	return parseJSON(t, rec)
}

// login returns an access token for the configured credentials.
func (app *testApp) login(t *testing.T) string {
	t.Helper()
	result := app.mustRequest(t, http.StatusOK, "POST", "/api/v1/auth/login",
		`{"username":"admin","password":"secret"}`, "")
	return result["token"].(string)
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

func TestAuthFlow(t *testing.T) {
	app := setupApp(t)

	t.Run("health is public", func(t *testing.T) {
		app.mustRequest(t, http.StatusOK, "GET", "/api/health", "", "")
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		app.mustRequest(t, http.StatusUnauthorized, "GET", "/api/v1/transactions", "", "")
		app.mustRequest(t, http.StatusUnauthorized, "GET", "/api/v1/transactions", "", "not-a-jwt")
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		app.mustRequest(t, http.StatusUnauthorized, "POST", "/api/v1/auth/login",
			`{"username":"admin","password":"wrong"}`, "")
	})

	t.Run("token opens the profile", func(t *testing.T) {
		token := app.login(t)
		result := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/profile", "", token)
		if result["username"] != "admin" {
			t.Errorf("expected admin, got %v", result["username"])
		}
	})

	t.Run("responses carry a request id", func(t *testing.T) {
		rec := app.request("GET", "/api/health", "", "")
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})
}

func TestLedgerFlow(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	// Seeded registries
	cards := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/cards", "", token)["cards"].([]interface{})
	if len(cards) != len(config.DefaultCards) {
		t.Fatalf("expected %d seeded cards, got %d", len(config.DefaultCards), len(cards))
	}

	app.mustRequest(t, http.StatusOK, "PUT", "/api/v1/cards/RBC/limit", `{"limit":500}`, token)

	app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/transactions",
		`{"type":"Income","date":"2025-03-01","amount":1000,"description":"Salary"}`, token)
	expense := app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/transactions",
		`{"type":"Expense","date":"2025-03-05","amount":100,"category":"Food","card":"rbc"}`, token)
	app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/transactions",
		`{"type":"Repayment","date":"2025-04-02","amount":40,"card":"RBC"}`, token)
	app.mustRequest(t, http.StatusOK, "POST", "/api/v1/savings/contributions", `{"amount":300}`, token)

	// Validation happens before the store is touched
	app.mustRequest(t, http.StatusBadRequest, "POST", "/api/v1/transactions",
		`{"type":"Repayment","amount":40}`, token)
	app.mustRequest(t, http.StatusBadRequest, "POST", "/api/v1/transactions",
		`{"type":"Expense","amount":-1,"category":"Food"}`, token)
	app.mustRequest(t, http.StatusNotFound, "POST", "/api/v1/transactions",
		`{"type":"Repayment","amount":40,"card":"NoSuchCard"}`, token)

	t.Run("summary derives the remaining balance", func(t *testing.T) {
		summary := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/summary", "", token)["summary"].(map[string]interface{})
		// 1000 - 300 - 100 - 40
		if summary["remaining_balance"] != "560" {
			t.Errorf("expected 560, got %v", summary["remaining_balance"])
		}
		if summary["transaction_count"] != float64(3) {
			t.Errorf("expected 3 transactions, got %v", summary["transaction_count"])
		}
	})

	t.Run("card standing nets repayments", func(t *testing.T) {
		card := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/cards/RBC", "", token)["card"].(map[string]interface{})
		if card["outstanding"] != "60" || card["available"] != "440" {
			t.Errorf("unexpected standing %v", card)
		}
	})

	t.Run("list is newest first", func(t *testing.T) {
		result := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/transactions", "", token)
		data := result["data"].([]interface{})
		if len(data) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(data))
		}
		if first := data[0].(map[string]interface{}); first["type"] != "Repayment" {
			t.Errorf("expected repayment first, got %v", first["type"])
		}
	})

	t.Run("month filter ignores case", func(t *testing.T) {
		data := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/transactions?month=march%202025", "", token)["data"].([]interface{})
		if len(data) != 2 {
			t.Fatalf("expected 2 March rows, got %d", len(data))
		}
		if first := data[0].(map[string]interface{}); first["card"] != "RBC" {
			t.Errorf("expected the registered card name, got %v", first["card"])
		}
	})

	t.Run("months are listed newest first", func(t *testing.T) {
		months := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/months", "", token)["months"].([]interface{})
		if len(months) != 2 || months[0] != "April 2025" {
			t.Errorf("unexpected months %v", months)
		}
		totals := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/months/March%202025", "", token)["totals"].(map[string]interface{})
		if totals["income"] != "1000" || totals["expense"] != "100" {
			t.Errorf("unexpected March totals %v", totals)
		}
	})

	t.Run("update and delete feed straight into reports", func(t *testing.T) {
		id := expense["transaction"].(map[string]interface{})["id"].(float64)
		path := fmt.Sprintf("/api/v1/transactions/%.0f", id)

		app.mustRequest(t, http.StatusOK, "PUT", path, `{"amount":150}`, token)
		totals := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/totals", "", token)["totals"].(map[string]interface{})
		if totals["expense"] != "150" {
			t.Errorf("expected expense 150, got %v", totals["expense"])
		}

		app.mustRequest(t, http.StatusNoContent, "DELETE", path, "", token)
		app.mustRequest(t, http.StatusNoContent, "DELETE", path, "", token)
		app.mustRequest(t, http.StatusNotFound, "GET", path, "", token)
	})

	t.Run("reset clears the ledger", func(t *testing.T) {
		app.mustRequest(t, http.StatusNoContent, "DELETE", "/api/v1/transactions", "", token)
		summary := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/summary", "", token)["summary"].(map[string]interface{})
		if summary["transaction_count"] != float64(0) {
			t.Errorf("expected empty ledger, got %v", summary["transaction_count"])
		}
		ratio := summary["savings_ratio"].(map[string]interface{})
		if ratio["defined"] != false {
			t.Errorf("expected undefined ratio, got %v", ratio)
		}
	})
}

func TestRegistryFlow(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	t.Run("removed cards keep their history", func(t *testing.T) {
		app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/transactions",
			`{"type":"Expense","amount":25,"category":"Food","card":"Rogers"}`, token)
		app.mustRequest(t, http.StatusNoContent, "DELETE", "/api/v1/cards/rogers", "", token)
		app.mustRequest(t, http.StatusNotFound, "GET", "/api/v1/cards/Rogers", "", token)
		app.mustRequest(t, http.StatusNotFound, "POST", "/api/v1/transactions",
			`{"type":"Repayment","amount":10,"card":"Rogers"}`, token)

		card := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/reports/cards/Rogers", "", token)["card"].(map[string]interface{})
		if card["registered"] != false || card["spent"] != "25" {
			t.Errorf("unexpected orphan standing %v", card)
		}
	})

	t.Run("card names are unique ignoring case", func(t *testing.T) {
		app.mustRequest(t, http.StatusConflict, "POST", "/api/v1/cards", `{"name":"cibc"}`, token)
		app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/cards", `{"name":"Amex"}`, token)
	})

	t.Run("categories are idempotent", func(t *testing.T) {
		app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/categories", `{"label":"Food"}`, token)
		app.mustRequest(t, http.StatusNoContent, "DELETE", "/api/v1/categories/Nothing", "", token)
		app.mustRequest(t, http.StatusNoContent, "DELETE", "/api/v1/categories/Rent", "", token)

		labels := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/categories", "", token)["categories"].([]interface{})
		if len(labels) != len(config.DefaultCategories)-1 {
			t.Errorf("expected %d categories, got %d", len(config.DefaultCategories)-1, len(labels))
		}
	})

	t.Run("goals track progress independently of savings", func(t *testing.T) {
		app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/goals", `{"name":"Vacation","target_amount":1000}`, token)
		app.mustRequest(t, http.StatusConflict, "POST", "/api/v1/goals", `{"name":"vacation","target_amount":5}`, token)

		goal := app.mustRequest(t, http.StatusOK, "POST", "/api/v1/goals/Vacation/contributions", `{"amount":250}`, token)["goal"].(map[string]interface{})
		if goal["progress"] != "0.25" {
			t.Errorf("expected progress 0.25, got %v", goal["progress"])
		}

		savings := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/savings", "", token)["savings"].(map[string]interface{})
		if savings["amount"] != "0" {
			t.Errorf("expected savings untouched, got %v", savings["amount"])
		}
	})
}

func TestExportFlow(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	app.mustRequest(t, http.StatusCreated, "POST", "/api/v1/transactions",
		`{"type":"Expense","date":"2025-03-05","amount":12.5,"category":"Food","description":"Lunch, with friends"}`, token)

	t.Run("csv export quotes fields", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/export/transactions.csv", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		rows, err := csv.NewReader(rec.Body).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected header and one row, got %d rows", len(rows))
		}
		if rows[1][6] != "Lunch, with friends" {
			t.Errorf("unexpected description %q", rows[1][6])
		}
	})

	t.Run("xlsx export is a zip archive", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/export/transactions.xlsx", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.HasPrefix(rec.Body.String(), "PK") {
			t.Error("expected a zip payload")
		}
	})

	t.Run("backup needs the api key", func(t *testing.T) {
		app.mustRequest(t, http.StatusUnauthorized, "GET", "/api/v1/backup/transactions.csv", "", "")

		req := httptest.NewRequest("GET", "/api/v1/backup/transactions.csv", http.NoBody)
		req.Header.Set("X-API-Key", backupKey)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("backup is disabled without a key", func(t *testing.T) {
		disabled := setupAppWithKey(t, "")
		disabled.mustRequest(t, http.StatusServiceUnavailable, "GET", "/api/v1/backup/transactions.csv", "", "")
	})
}
