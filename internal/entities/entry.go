package entities

import "time"

// EntryType is the kind of catalog entry
type EntryType string

const (
	EntryTypeMovie  EntryType = "MOVIE"
	EntryTypeTVShow EntryType = "TV_SHOW"
)

// Entry represents a user-owned catalog record (movie/show metadata).
// Budget, duration and yearTime are free-text fields, not numeric types.
type Entry struct {
	ID          string    `json:"id"` // UUID
	Title       string    `json:"title"`
	Type        EntryType `json:"type"`
	Director    string    `json:"director"`
	Budget      string    `json:"budget"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	YearTime    string    `json:"yearTime"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
