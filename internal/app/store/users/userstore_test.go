package userstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	userstore "github.com/devcirclehq/devcircle/internal/app/store/users"
	"github.com/devcirclehq/devcircle/internal/app/system/indexes"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"github.com/devcirclehq/devcircle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setPoints(t *testing.T, db *mongo.Database, id primitive.ObjectID, points int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.Collection("users").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"points": points}}); err != nil {
		t.Fatalf("setPoints: %v", err)
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		UID:      "uid-create-1",
		Name:     " Grace Hopper ",
		Email:    "Grace@Example.com",
		Username: "GHopper",
		Role:     "Mentor",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "grace@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.Username != "ghopper" {
		t.Errorf("username not normalized: %q", created.Username)
	}
	if created.Badges == nil || created.Interests == nil {
		t.Error("expected empty slices, not nil")
	}
	if created.JoinedAt.IsZero() {
		t.Error("expected JoinedAt to be set")
	}

	// Same uid, different email.
	if _, err := store.Create(ctx, models.User{UID: "uid-create-1", Email: "other@example.com", Username: "o", Role: "Mentor"}); !errors.Is(err, userstore.ErrDuplicateUser) {
		t.Errorf("duplicate uid err = %v, want ErrDuplicateUser", err)
	}
	// Same email, different uid.
	if _, err := store.Create(ctx, models.User{UID: "uid-create-2", Email: "grace@example.com", Username: "g2", Role: "Mentor"}); !errors.Is(err, userstore.ErrDuplicateUser) {
		t.Errorf("duplicate email err = %v, want ErrDuplicateUser", err)
	}
}

func TestStore_Lookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	u := testutil.SeedUser(t, db)

	byID, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.UID != u.UID {
		t.Errorf("GetByID uid = %q, want %q", byID.UID, u.UID)
	}

	byUID, err := store.GetByUID(ctx, u.UID)
	if err != nil {
		t.Fatalf("GetByUID: %v", err)
	}
	if byUID.ID != u.ID {
		t.Errorf("GetByUID id = %s, want %s", byUID.ID.Hex(), u.ID.Hex())
	}

	byEmail, err := store.GetByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetByEmail id = %s, want %s", byEmail.ID.Hex(), u.ID.Hex())
	}
}

func TestStore_Leaderboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	low := testutil.SeedUser(t, db)
	mid := testutil.SeedUser(t, db)
	high := testutil.SeedUser(t, db)
	setPoints(t, db, low.ID, 5)
	setPoints(t, db, mid.ID, 50)
	setPoints(t, db, high.ID, 500)

	board, err := store.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("len = %d, want 3", len(board))
	}
	if board[0].ID != high.ID || board[1].ID != mid.ID || board[2].ID != low.ID {
		t.Errorf("order = %d,%d,%d, want 500,50,5", board[0].Points, board[1].Points, board[2].Points)
	}
}

func TestStore_PromoteAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	u := testutil.SeedUser(t, db)

	promoted, err := store.PromoteAdmin(ctx, u.Email)
	if err != nil {
		t.Fatalf("PromoteAdmin: %v", err)
	}
	if !promoted {
		t.Fatal("expected promoted = true")
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsAdmin() {
		t.Errorf("role = %q, want admin", got.Role)
	}

	if promoted, err := store.PromoteAdmin(ctx, "nobody@example.com"); err != nil || promoted {
		t.Errorf("PromoteAdmin(unknown) = %v, %v, want false, nil", promoted, err)
	}
}
