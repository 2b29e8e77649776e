package model

import "time"

// Book represents a catalog record.
// Books are not scoped to a user; any authenticated caller may mutate them.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookPatch describes a partial update. A nil field leaves the
// corresponding book field unchanged.
type BookPatch struct {
	Title         *string
	Author        *string
	PublishedYear *int
	Genre         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.PublishedYear == nil && p.Genre == nil
}

// Apply copies the set fields onto the book.
func (p *BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.PublishedYear != nil {
		b.PublishedYear = p.PublishedYear
	}
	if p.Genre != nil {
		b.Genre = p.Genre
	}
}
