package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"hrms/internal/app/server"
	"hrms/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func TestEmployeeOnboardingAndPayrollJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:         dbURL,
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		Environment:         "test",
		SeedAdminEmail:      "admin@test.local",
		SeedAdminPassword:   "ChangeMe123!",
		RunMigrations:       true,
		MigrationsDir:       migrationsDir(t),
		RunSeed:             true,
		MaxBodyBytes:        1048576,
		RateLimitPerMinute:  1000,
		WorkDayHours:        8,
		LateAfter:           "09:15",
		PropagationQueueLen: 128,
		MetricsEnabled:      true,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, token, employeeEmail)

	// Employee creation propagates asynchronously into an onboarding goal.
	goal := waitForOnboardingGoal(t, client, ts.URL, token, employeeID)
	if goal["category"] != "onboarding" {
		t.Fatalf("expected onboarding goal, got %v", goal["category"])
	}
	if progress, ok := goal["progress"].(float64); !ok || progress != 0 {
		t.Fatalf("expected onboarding goal progress 0, got %v", goal["progress"])
	}

	setSalary(t, client, ts.URL, token, employeeID, 5000)
	month := time.Now().UTC().Format("2006-01")
	runID := runPayroll(t, client, ts.URL, token, month)

	payslips := listPayslips(t, client, ts.URL, token, runID)
	if len(payslips) == 0 {
		t.Fatal("expected at least one payslip")
	}

	postingID := createPosting(t, client, ts.URL, token)
	applicationID := applyToPosting(t, client, ts.URL, token, postingID)
	moveStage(t, client, ts.URL, token, applicationID, "screening")
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate test file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) envelope {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, url, err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("%s %s: status %d, error %v", method, url, resp.StatusCode, env.Error)
	}
	return env
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login returned no token: %v", err)
	}
	return data.Token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, email string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/employees", token, map[string]any{
		"firstName": "Journey",
		"lastName":  "Tester",
		"email":     email,
		"position":  "Engineer",
	})
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.ID == "" {
		t.Fatalf("create employee returned no id: %v", err)
	}
	return data.ID
}

func waitForOnboardingGoal(t *testing.T, client *http.Client, baseURL, token, employeeID string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		env := doJSON(t, client, http.MethodGet,
			baseURL+"/api/v1/performance/goals?employeeId="+employeeID, token, nil)
		var goals []map[string]any
		if err := json.Unmarshal(env.Data, &goals); err == nil && len(goals) > 0 {
			return goals[0]
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("timed out waiting for onboarding goal")
	return nil
}

func setSalary(t *testing.T, client *http.Client, baseURL, token, employeeID string, base float64) {
	t.Helper()
	doJSON(t, client, http.MethodPost, baseURL+"/api/v1/payroll/salaries", token, map[string]any{
		"employeeId": employeeID,
		"baseSalary": base,
	})
}

func runPayroll(t *testing.T, client *http.Client, baseURL, token, month string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/payroll/runs", token, map[string]string{
		"month": month,
	})
	var data struct {
		Run struct {
			ID string `json:"id"`
		} `json:"run"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Run.ID == "" {
		t.Fatalf("payroll run returned no id: %v", err)
	}
	return data.Run.ID
}

func listPayslips(t *testing.T, client *http.Client, baseURL, token, runID string) []map[string]any {
	t.Helper()
	env := doJSON(t, client, http.MethodGet, baseURL+"/api/v1/payroll/runs/"+runID+"/payslips", token, nil)
	var payslips []map[string]any
	if err := json.Unmarshal(env.Data, &payslips); err != nil {
		t.Fatalf("decode payslips: %v", err)
	}
	return payslips
}

func createPosting(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/recruitment/postings", token, map[string]string{
		"title": "Backend Engineer",
	})
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.ID == "" {
		t.Fatalf("create posting returned no id: %v", err)
	}
	return data.ID
}

func applyToPosting(t *testing.T, client *http.Client, baseURL, token, postingID string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost,
		baseURL+"/api/v1/recruitment/postings/"+postingID+"/applications", token, map[string]string{
			"candidateName": "Ada Candidate",
			"email":         "ada@example.com",
		})
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.ID == "" {
		t.Fatalf("create application returned no id: %v", err)
	}
	return data.ID
}

func moveStage(t *testing.T, client *http.Client, baseURL, token, applicationID, stage string) {
	t.Helper()
	env := doJSON(t, client, http.MethodPost,
		baseURL+"/api/v1/recruitment/applications/"+applicationID+"/stage", token, map[string]string{
			"stage": stage,
		})
	var data struct {
		Stage string `json:"stage"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Stage != stage {
		t.Fatalf("expected stage %s, got %s", stage, data.Stage)
	}
}
