package models

import "catalog-be/internal/entities"

// Pagination describes one page of a list result
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// EntryListResult is one page of entries plus pagination metadata
type EntryListResult struct {
	Entries    []*entities.Entry
	Pagination Pagination
}
