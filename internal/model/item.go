package model

import "time"

// LostItem represents a single lost-property report.
type LostItem struct {
	ID       int64  `json:"id"`
	MemberID int64  `json:"member_id"`
	County   string `json:"county"`
	District string `json:"district"`
	Location string `json:"location"`
	LostDate string `json:"lost_date"`
	Category string `json:"category"`
	// Image is the stored file name under the image root, empty if the
	// report has no photo.
	Image    string    `json:"image,omitempty"`
	Note     string    `json:"note,omitempty"`
	PostedAt time.Time `json:"posted_at"`

	// Derived fields (not stored, populated at read time).
	ImageExists bool `json:"image_exists"`
}

// SearchFilter holds search criteria for lost items. Empty fields impose no
// constraint: county, district and date match exactly, location and category
// match by substring.
type SearchFilter struct {
	County   string
	District string
	Location string
	Date     string
	Category string
}
