package tasks_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devcirclehq/devcircle/internal/app/features/tasks"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"github.com/devcirclehq/devcircle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasks.NewHandler(db, zap.NewNop())

	owner := testutil.SeedUser(t, db)
	project := testutil.SeedProject(t, db, owner.ID)

	body := fmt.Sprintf(`{"project_id":%q,"title":"Write docs","priority":"high"}`, project.ID.Hex())
	req := httptest.NewRequest("POST", "/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if got.Status != models.TaskTodo {
		t.Errorf("status = %q, want todo", got.Status)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
}

func TestCreate_Rejections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasks.NewHandler(db, zap.NewNop())

	owner := testutil.SeedUser(t, db)
	project := testutil.SeedProject(t, db, owner.ID)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing project", fmt.Sprintf(`{"project_id":%q,"title":"X"}`, primitive.NewObjectID().Hex()), http.StatusNotFound},
		{"bad project id", `{"project_id":"nope","title":"X"}`, http.StatusBadRequest},
		{"missing title", fmt.Sprintf(`{"project_id":%q}`, project.ID.Hex()), http.StatusBadRequest},
		{"bad status", fmt.Sprintf(`{"project_id":%q,"title":"X","status":"later"}`, project.ID.Hex()), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/tasks", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestListByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	h := tasks.NewHandler(db, zap.NewNop())

	owner := testutil.SeedUser(t, db)
	project := testutil.SeedProject(t, db, owner.ID)
	if _, err := h.Tasks.Create(ctx, models.Task{ProjectID: project.ID, Title: "A"}); err != nil {
		t.Fatalf("seed task: %v", err)
	}

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/tasks/"+project.ID.Hex(), nil), "id", project.ID.Hex())
	rec := httptest.NewRecorder()
	h.ListByProject(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func patchTask(h *tasks.Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("PATCH", "/tasks/"+id, strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", id)
	rec := httptest.NewRecorder()
	h.Patch(rec, req)
	return rec
}

func TestPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	h := tasks.NewHandler(db, zap.NewNop())

	owner := testutil.SeedUser(t, db)
	project := testutil.SeedProject(t, db, owner.ID)
	assignee := testutil.SeedUser(t, db)
	task, err := h.Tasks.Create(ctx, models.Task{ProjectID: project.ID, Title: "Fix bug"})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}

	body := fmt.Sprintf(`{"status":"in_progress","assignee_id":%q}`, assignee.ID.Hex())
	rec := patchTask(h, task.ID.Hex(), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if got.Status != models.TaskInProgress {
		t.Errorf("status = %q, want in_progress", got.Status)
	}
	if got.AssigneeID == nil || *got.AssigneeID != assignee.ID {
		t.Errorf("assignee = %v, want %s", got.AssigneeID, assignee.ID.Hex())
	}

	// Clearing the assignee.
	rec = patchTask(h, task.ID.Hex(), `{"assignee_id":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d: %s", rec.Code, rec.Body.String())
	}
	got = models.Task{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if got.AssigneeID != nil {
		t.Errorf("assignee = %v, want nil", got.AssigneeID)
	}

	// Only enumerated fields are accepted.
	if rec := patchTask(h, task.ID.Hex(), `{"title":"new title"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("title patch status = %d, want 400", rec.Code)
	}
	if rec := patchTask(h, task.ID.Hex(), `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty patch status = %d, want 400", rec.Code)
	}
	if rec := patchTask(h, task.ID.Hex(), `{"status":"later"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad status patch = %d, want 400", rec.Code)
	}
	if rec := patchTask(h, primitive.NewObjectID().Hex(), `{"status":"done"}`); rec.Code != http.StatusNotFound {
		t.Errorf("missing task patch = %d, want 404", rec.Code)
	}
}
