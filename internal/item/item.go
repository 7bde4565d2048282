// Package item implements the lost-item lifecycle: posting, editing and
// deleting reports, the member's own listing, and the public search. Photo
// files live in an images.Store; the database only records the stored name.
package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/campusboard/lostfound/internal/images"
	"github.com/campusboard/lostfound/internal/model"
	"github.com/campusboard/lostfound/internal/store"
)

var (
	// ErrNotAuthenticated means the operation needs a logged-in member.
	ErrNotAuthenticated = errors.New("login or register first")

	// ErrNotFound means the item id does not resolve.
	ErrNotFound = errors.New("item not found")

	// ErrNotOwner means the requesting member does not own the item.
	// Only Delete checks ownership; Update deliberately does not.
	ErrNotOwner = errors.New("not the owner of this item")

	// ErrImageStore means writing the photo to the image root failed.
	ErrImageStore = errors.New("saving image failed")
)

// Fields holds the mutable attributes of a lost-item report.
type Fields struct {
	County   string
	District string
	Location string
	LostDate string
	Category string
	Note     string
}

// Upload is an optional photo attached to a create or update. Data carries
// the (already validated) bytes to store.
type Upload struct {
	Filename string
	Data     io.Reader
}

// Create posts a new report owned by actorID. The photo file, if any, is
// written before the row is inserted; if the insert then fails the file is
// removed again so the root holds no orphans.
func Create(ctx context.Context, db *sql.DB, imgs *images.Store, actorID int64, f Fields, up *Upload) (*model.LostItem, error) {
	if actorID == 0 {
		return nil, ErrNotAuthenticated
	}

	var name string
	if up != nil {
		name = imgs.NewName(up.Filename)
		if err := imgs.Put(name, up.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageStore, err)
		}
	}

	item, err := store.CreateLostItem(ctx, db, actorID, f.County, f.District, f.Location, f.LostDate, f.Category, name, f.Note)
	if err != nil {
		if name != "" {
			_ = imgs.Delete(name)
		}
		return nil, err
	}

	item.ImageExists = imgs.Exists(item.Image)
	return item, nil
}

// Update overwrites all mutable fields of a report. There is no ownership
// check here; only Delete enforces ownership. With a new photo the old file
// is removed best-effort and the new one written before the row is touched,
// so a failed image write leaves the stored record unchanged.
func Update(ctx context.Context, db *sql.DB, imgs *images.Store, id int64, f Fields, up *Upload) (*model.LostItem, error) {
	item, err := store.GetLostItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	name := item.Image
	if up != nil {
		if item.Image != "" {
			_ = imgs.Delete(item.Image)
		}
		name = imgs.NewName(up.Filename)
		if err := imgs.Put(name, up.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageStore, err)
		}
	}

	err = store.UpdateLostItem(ctx, db, id, f.County, f.District, f.Location, f.LostDate, f.Category, name, f.Note)
	if err != nil {
		if up != nil {
			_ = imgs.Delete(name)
		}
		return nil, err
	}

	updated, err := store.GetLostItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	updated.ImageExists = imgs.Exists(updated.Image)
	return updated, nil
}

// Delete removes a report and its photo file. It requires a logged-in member
// and succeeds only when that member owns the item.
func Delete(ctx context.Context, db *sql.DB, imgs *images.Store, actorID, id int64) error {
	if actorID == 0 {
		return ErrNotAuthenticated
	}

	item, err := store.GetLostItem(ctx, db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if item.MemberID != actorID {
		return ErrNotOwner
	}

	if item.Image != "" {
		_ = imgs.Delete(item.Image)
	}

	return store.DeleteLostItem(ctx, db, id)
}

// ListForMember returns the member's own reports, newest first, with
// ImageExists checked against the image root at read time.
func ListForMember(ctx context.Context, db *sql.DB, imgs *images.Store, memberID int64) ([]model.LostItem, error) {
	items, err := store.ListItemsForMember(ctx, db, memberID)
	if err != nil {
		return nil, err
	}
	annotate(imgs, items)
	return items, nil
}

// Search returns reports matching the filter, newest first, with ImageExists
// checked against the image root at read time.
func Search(ctx context.Context, db *sql.DB, imgs *images.Store, filter model.SearchFilter) ([]model.LostItem, error) {
	items, err := store.SearchItems(ctx, db, filter)
	if err != nil {
		return nil, err
	}
	annotate(imgs, items)
	return items, nil
}

// annotate fills the derived ImageExists flag. A recorded file name whose
// file has vanished from the root yields false, never an error.
func annotate(imgs *images.Store, items []model.LostItem) {
	for i := range items {
		items[i].ImageExists = imgs.Exists(items[i].Image)
	}
}
