package register_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devcirclehq/devcircle/internal/app/features/register"
	"github.com/devcirclehq/devcircle/internal/app/system/indexes"
	"github.com/devcirclehq/devcircle/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) *register.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return register.NewHandler(db, zap.NewNop())
}

func post(h *register.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/auth/register-request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestSubmit(t *testing.T) {
	h := setup(t)

	rec := post(h, `{"name":"Ada","email":"ada@example.com","role":"Student Developer","interests":["go"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected non-empty id")
	}
	if resp.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Status)
	}
}

func TestSubmit_Duplicate(t *testing.T) {
	h := setup(t)

	body := `{"name":"Ada","email":"ada@example.com","role":"Mentor"}`
	if rec := post(h, body); rec.Code != http.StatusCreated {
		t.Fatalf("first submit status = %d", rec.Code)
	}

	rec := post(h, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Error.Kind != "duplicate_request" {
		t.Errorf("kind = %q, want duplicate_request", resp.Error.Kind)
	}
}

func TestSubmit_Validation(t *testing.T) {
	h := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@example.com","role":"Mentor"}`},
		{"bad email", `{"name":"A","email":"not-an-email","role":"Mentor"}`},
		{"unknown role", `{"name":"A","email":"a@example.com","role":"Wizard"}`},
		{"unknown field", `{"name":"A","email":"a@example.com","role":"Mentor","password":"x"}`},
		{"malformed json", `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := post(h, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
