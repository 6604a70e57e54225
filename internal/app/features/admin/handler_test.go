package admin_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devcirclehq/devcircle/internal/app/features/admin"
	userstore "github.com/devcirclehq/devcircle/internal/app/store/users"
	"github.com/devcirclehq/devcircle/internal/app/system/identity"
	"github.com/devcirclehq/devcircle/internal/app/system/indexes"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"github.com/devcirclehq/devcircle/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T, provisioner identity.Provisioner) (*admin.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	if provisioner == nil {
		dev := identity.NewDevProvider(db, []byte("test-secret"))
		if err := dev.EnsureIndexes(ctx); err != nil {
			t.Fatalf("dev provider indexes: %v", err)
		}
		provisioner = dev
	}
	return admin.NewHandler(db.Client(), db, provisioner, zap.NewNop()), db
}

func postJSON(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestApprove(t *testing.T) {
	h, db := setup(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending := testutil.SeedPendingUser(t, db)

	body := fmt.Sprintf(`{"user_id":%q,"username":"newmember","password":"hunter22"}`, pending.ID.Hex())
	rec := postJSON(h.Approve, "/admin/approve-user", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User        models.User `json:"user"`
		Credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"credentials"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.User.UID == "" {
		t.Error("expected provider uid on created user")
	}
	if resp.User.Email != pending.Email {
		t.Errorf("user email = %q, want %q", resp.User.Email, pending.Email)
	}
	if resp.Credentials.Password != "hunter22" {
		t.Errorf("credentials not echoed: %+v", resp.Credentials)
	}

	// The user record is resolvable by uid.
	users := userstore.New(db)
	if _, err := users.GetByUID(ctx, resp.User.UID); err != nil {
		t.Errorf("GetByUID after approve: %v", err)
	}

	// Approval is terminal: a second approve finds nothing pending.
	if rec := postJSON(h.Approve, "/admin/approve-user", body); rec.Code != http.StatusNotFound {
		t.Errorf("second approve status = %d, want 404", rec.Code)
	}
}

func TestApprove_NotFound(t *testing.T) {
	h, _ := setup(t, nil)

	rec := postJSON(h.Approve, "/admin/approve-user",
		`{"user_id":"64b000000000000000000000","username":"x","password":"hunter22"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

type failingProvisioner struct{ err error }

func (f failingProvisioner) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	return "", f.err
}

func TestApprove_ProvisioningFailed(t *testing.T) {
	h, db := setup(t, failingProvisioner{err: fmt.Errorf("%w: email in use", identity.ErrRejected)})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending := testutil.SeedPendingUser(t, db)

	body := fmt.Sprintf(`{"user_id":%q,"username":"x","password":"hunter22"}`, pending.ID.Hex())
	rec := postJSON(h.Approve, "/admin/approve-user", body)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Error.Kind != "identity_provisioning_failed" {
		t.Errorf("kind = %q, want identity_provisioning_failed", resp.Error.Kind)
	}

	// The request must remain pending so the admin can retry.
	if _, err := h.Pending.GetPending(ctx, pending.ID); err != nil {
		t.Errorf("request no longer pending after provisioning failure: %v", err)
	}
	if _, err := userstore.New(db).GetByEmail(ctx, pending.Email); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("user record exists after provisioning failure: %v", err)
	}
}

func TestReject(t *testing.T) {
	h, db := setup(t, nil)

	pending := testutil.SeedPendingUser(t, db)
	body := fmt.Sprintf(`{"user_id":%q}`, pending.ID.Hex())

	rec := postJSON(h.Reject, "/admin/reject-user", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// Rejection is terminal.
	if rec := postJSON(h.Reject, "/admin/reject-user", body); rec.Code != http.StatusNotFound {
		t.Errorf("second reject status = %d, want 404", rec.Code)
	}
	// And the request cannot be approved afterwards.
	approve := fmt.Sprintf(`{"user_id":%q,"username":"x","password":"hunter22"}`, pending.ID.Hex())
	if rec := postJSON(h.Approve, "/admin/approve-user", approve); rec.Code != http.StatusNotFound {
		t.Errorf("approve after reject status = %d, want 404", rec.Code)
	}
}

func TestListPending(t *testing.T) {
	h, db := setup(t, nil)

	first := testutil.SeedPendingUser(t, db)
	second := testutil.SeedPendingUser(t, db)

	req := httptest.NewRequest("GET", "/admin/pending-requests", nil)
	rec := httptest.NewRecorder()
	h.ListPending(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []models.PendingUser
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Error("pending requests not ordered oldest-first")
	}
}
