package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusboard/lostfound/internal/model"
)

// CreateLostItem creates a new lost-item report owned by memberID. image may
// be empty for reports without a photo.
func CreateLostItem(ctx context.Context, db *sql.DB, memberID int64, county, district, location, lostDate, category, image, note string) (*model.LostItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO lost_items (member_id, county, district, location, lost_date, category, image, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		memberID, county, district, location, lostDate, category, image, note,
	)
	if err != nil {
		return nil, fmt.Errorf("creating lost item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting lost item id: %w", err)
	}

	return GetLostItem(ctx, db, id)
}

// GetLostItem returns a lost item by ID.
func GetLostItem(ctx context.Context, db *sql.DB, id int64) (*model.LostItem, error) {
	item := &model.LostItem{}
	var image, note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, member_id, county, district, location, lost_date, category, image, note, posted_at
		 FROM lost_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.MemberID, &item.County, &item.District, &item.Location,
		&item.LostDate, &item.Category, &image, &note, &item.PostedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lost item: %w", err)
	}
	item.Image = image.String
	item.Note = note.String
	return item, nil
}

// UpdateLostItem overwrites all mutable fields of a lost item. The owning
// member id and posted_at never change.
func UpdateLostItem(ctx context.Context, db *sql.DB, id int64, county, district, location, lostDate, category, image, note string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE lost_items
		 SET county = ?, district = ?, location = ?, lost_date = ?, category = ?, image = ?, note = ?
		 WHERE id = ?`,
		county, district, location, lostDate, category, image, note, id,
	)
	if err != nil {
		return fmt.Errorf("updating lost item: %w", err)
	}
	return nil
}

// DeleteLostItem removes a lost item row.
func DeleteLostItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM lost_items WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("deleting lost item: %w", err)
	}
	return nil
}

// ListItemsForMember returns all items owned by memberID, newest first.
func ListItemsForMember(ctx context.Context, db *sql.DB, memberID int64) ([]model.LostItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, member_id, county, district, location, lost_date, category, image, note, posted_at
		 FROM lost_items WHERE member_id = ?
		 ORDER BY posted_at DESC, id DESC`, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items for member: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

// SearchItems returns items matching the filter, newest first. Empty criteria
// impose no constraint: county, district and lost_date match exactly, location
// and category match by substring. A zero filter returns every item.
func SearchItems(ctx context.Context, db *sql.DB, filter model.SearchFilter) ([]model.LostItem, error) {
	var conds []string
	var args []any

	if filter.County != "" {
		conds = append(conds, "county = ?")
		args = append(args, filter.County)
	}
	if filter.District != "" {
		conds = append(conds, "district = ?")
		args = append(args, filter.District)
	}
	if filter.Location != "" {
		conds = append(conds, "instr(location, ?) > 0")
		args = append(args, filter.Location)
	}
	if filter.Date != "" {
		conds = append(conds, "lost_date = ?")
		args = append(args, filter.Date)
	}
	if filter.Category != "" {
		conds = append(conds, "instr(category, ?) > 0")
		args = append(args, filter.Category)
	}

	query := `SELECT id, member_id, county, district, location, lost_date, category, image, note, posted_at
	          FROM lost_items`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY posted_at DESC, id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching lost items: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

func scanLostItems(rows *sql.Rows) ([]model.LostItem, error) {
	var items []model.LostItem
	for rows.Next() {
		var item model.LostItem
		var image, note sql.NullString
		if err := rows.Scan(&item.ID, &item.MemberID, &item.County, &item.District, &item.Location,
			&item.LostDate, &item.Category, &image, &note, &item.PostedAt); err != nil {
			return nil, fmt.Errorf("scanning lost item: %w", err)
		}
		item.Image = image.String
		item.Note = note.String
		items = append(items, item)
	}
	return items, rows.Err()
}
