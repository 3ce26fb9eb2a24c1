package models

// CreateEntryRequest represents the request body for creating a catalog entry
type CreateEntryRequest struct {
	Title       string  `json:"title" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=MOVIE TV_SHOW"`
	Director    string  `json:"director" binding:"required"`
	Budget      string  `json:"budget" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Duration    string  `json:"duration" binding:"required"`
	YearTime    string  `json:"yearTime" binding:"required"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

// UpdateEntryRequest represents a partial update. Nil fields are left
// unchanged; provided fields must still pass the same rules as on create.
type UpdateEntryRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1"`
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=MOVIE TV_SHOW"`
	Director    *string `json:"director,omitempty" binding:"omitempty,min=1"`
	Budget      *string `json:"budget,omitempty" binding:"omitempty,min=1"`
	Location    *string `json:"location,omitempty" binding:"omitempty,min=1"`
	Duration    *string `json:"duration,omitempty" binding:"omitempty,min=1"`
	YearTime    *string `json:"yearTime,omitempty" binding:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

// ListEntriesQuery represents the query parameters for listing entries
type ListEntriesQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,min=1"`
	Search string `form:"search"`
	Type   string `form:"type" binding:"omitempty,oneof=MOVIE TV_SHOW"`
}
