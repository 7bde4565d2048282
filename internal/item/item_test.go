package item

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/campusboard/lostfound/internal/db"
	"github.com/campusboard/lostfound/internal/images"
	"github.com/campusboard/lostfound/internal/model"
	"github.com/campusboard/lostfound/internal/store"
)

func setup(t *testing.T) (*sql.DB, *images.Store, int64) {
	t.Helper()
	database := db.NewTestDB(t)
	imgs, err := images.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	m, err := store.CreateMember(context.Background(), database, "Poster", "poster@example.com", "hash", "", "")
	if err != nil {
		t.Fatalf("creating member: %v", err)
	}
	return database, imgs, m.ID
}

var fields = Fields{
	County:   "台中市",
	District: "太平區",
	Location: "engineering building",
	LostDate: "2025-06-01",
	Category: "學生證",
	Note:     "found on a desk",
}

func TestCreateRequiresAuthentication(t *testing.T) {
	database, imgs, _ := setup(t)

	_, err := Create(context.Background(), database, imgs, 0, fields, nil)
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCreateWithoutImage(t *testing.T) {
	database, imgs, memberID := setup(t)

	item, err := Create(context.Background(), database, imgs, memberID, fields, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Image != "" {
		t.Errorf("expected no image name, got %q", item.Image)
	}
	if item.ImageExists {
		t.Error("expected image_exists false without an upload")
	}
	if item.MemberID != memberID {
		t.Errorf("expected owner %d, got %d", memberID, item.MemberID)
	}
}

func TestCreateWithImage(t *testing.T) {
	database, imgs, memberID := setup(t)

	item, err := Create(context.Background(), database, imgs, memberID, fields,
		&Upload{Filename: "card.jpg", Data: strings.NewReader("jpeg-bytes")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Image == "" {
		t.Fatal("expected stored image name")
	}
	if !strings.HasSuffix(item.Image, "_card.jpg") {
		t.Errorf("expected original basename suffix, got %q", item.Image)
	}
	if !item.ImageExists {
		t.Error("expected image_exists true after upload")
	}
	if !imgs.Exists(item.Image) {
		t.Error("expected file present in image root")
	}
}

func TestCreateConcurrentNamesDoNotCollide(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	a, _ := Create(ctx, database, imgs, memberID, fields, &Upload{Filename: "photo.jpg", Data: strings.NewReader("a")})
	b, _ := Create(ctx, database, imgs, memberID, fields, &Upload{Filename: "photo.jpg", Data: strings.NewReader("b")})
	if a.Image == b.Image {
		t.Errorf("two uploads of %q must get distinct stored names", "photo.jpg")
	}
}

func TestUpdateNotFound(t *testing.T) {
	database, imgs, _ := setup(t)

	_, err := Update(context.Background(), database, imgs, 99, fields, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateIgnoresOwnership(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	item, _ := Create(ctx, database, imgs, memberID, fields, nil)

	// Update carries no actor at all: anyone who reaches it may edit.
	changed := fields
	changed.Category = "背包"
	updated, err := Update(ctx, database, imgs, item.ID, changed, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Category != "背包" {
		t.Errorf("expected updated category, got %q", updated.Category)
	}
	if updated.MemberID != memberID {
		t.Errorf("owner must be unchanged, got %d", updated.MemberID)
	}
}

func TestUpdateReplacesImage(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	item, _ := Create(ctx, database, imgs, memberID, fields,
		&Upload{Filename: "old.jpg", Data: strings.NewReader("old")})
	oldName := item.Image

	updated, err := Update(ctx, database, imgs, item.ID, fields,
		&Upload{Filename: "new.jpg", Data: strings.NewReader("new")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Image == oldName {
		t.Error("expected a fresh stored name for the new photo")
	}
	if imgs.Exists(oldName) {
		t.Error("expected old file removed")
	}
	if !imgs.Exists(updated.Image) {
		t.Error("expected new file present")
	}
}

func TestUpdateKeepsImageWithoutNewUpload(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	item, _ := Create(ctx, database, imgs, memberID, fields,
		&Upload{Filename: "keep.jpg", Data: strings.NewReader("bytes")})

	updated, err := Update(ctx, database, imgs, item.ID, fields, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Image != item.Image {
		t.Errorf("expected image name kept, got %q", updated.Image)
	}
	if !updated.ImageExists {
		t.Error("expected image still present")
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	other, _ := store.CreateMember(ctx, database, "Other", "other@example.com", "hash", "", "")
	item, _ := Create(ctx, database, imgs, memberID, fields,
		&Upload{Filename: "card.jpg", Data: strings.NewReader("bytes")})

	if err := Delete(ctx, database, imgs, 0, item.ID); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}

	if err := Delete(ctx, database, imgs, other.ID, item.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	// The item and its file are untouched after the refused delete.
	got, _ := store.GetLostItem(ctx, database, item.ID)
	if got == nil {
		t.Fatal("expected item to survive foreign delete")
	}
	if !imgs.Exists(item.Image) {
		t.Error("expected file to survive foreign delete")
	}

	// The owner may delete, which also removes the file.
	if err := Delete(ctx, database, imgs, memberID, item.ID); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	got, _ = store.GetLostItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item removed")
	}
	if imgs.Exists(item.Image) {
		t.Error("expected file removed")
	}
}

func TestDeleteNotFound(t *testing.T) {
	database, imgs, memberID := setup(t)

	err := Delete(context.Background(), database, imgs, memberID, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestImageExistsTracksFilesystem(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	item, _ := Create(ctx, database, imgs, memberID, fields,
		&Upload{Filename: "card.jpg", Data: strings.NewReader("bytes")})

	items, _ := ListForMember(ctx, database, imgs, memberID)
	if len(items) != 1 || !items[0].ImageExists {
		t.Fatalf("expected image_exists true, got %+v", items)
	}

	// Remove the file out-of-band; the recorded name stays but the derived
	// flag must flip on the next read.
	path, _ := imgs.FilePath(item.Image)
	os.Remove(path)

	items, _ = ListForMember(ctx, database, imgs, memberID)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Image == "" {
		t.Error("recorded image name must survive the missing file")
	}
	if items[0].ImageExists {
		t.Error("expected image_exists false after out-of-band deletion")
	}
}

func TestSearchAnnotatesAndOrders(t *testing.T) {
	database, imgs, memberID := setup(t)
	ctx := context.Background()

	first, _ := Create(ctx, database, imgs, memberID, fields, nil)
	second := fields
	second.County = "台北市"
	latest, _ := Create(ctx, database, imgs, memberID, second,
		&Upload{Filename: "photo.jpg", Data: strings.NewReader("bytes")})

	items, err := Search(ctx, database, imgs, model.SearchFilter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != latest.ID || items[1].ID != first.ID {
		t.Errorf("expected newest first, got %d then %d", items[0].ID, items[1].ID)
	}
	if !items[0].ImageExists || items[1].ImageExists {
		t.Errorf("unexpected image_exists flags: %v / %v", items[0].ImageExists, items[1].ImageExists)
	}

	filtered, _ := Search(ctx, database, imgs, model.SearchFilter{County: "台中市"})
	if len(filtered) != 1 || filtered[0].ID != first.ID {
		t.Errorf("expected county filter to return the first item, got %+v", filtered)
	}
}
