package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"catalog-be/internal/cache"
	"catalog-be/internal/entities"
	"catalog-be/internal/models"
	"catalog-be/internal/repository"
)

const entryCacheTTL = 5 * time.Minute

// EntryService defines the interface for catalog entry business logic.
// Every operation is scoped to the authenticated caller's userID.
type EntryService interface {
	Create(userID string, req *models.CreateEntryRequest) (*entities.Entry, error)
	List(userID string, query *models.ListEntriesQuery) (*models.EntryListResult, error)
	Get(userID, id string) (*entities.Entry, error)
	Update(userID, id string, req *models.UpdateEntryRequest) (*entities.Entry, error)
	Delete(userID, id string) error
}

type entryService struct {
	repo  repository.EntryRepository
	cache cache.Cache
	ctx   context.Context
}

// NewEntryService creates a new entry service. cacheClient may be nil; the
// service then reads straight through to the database.
func NewEntryService(repo repository.EntryRepository, cacheClient cache.Cache) EntryService {
	return &entryService{
		repo:  repo,
		cache: cacheClient,
		ctx:   context.Background(),
	}
}

func entryCacheKey(userID, id string) string {
	return fmt.Sprintf("entry:%s:%s", userID, id)
}

// Create validates and persists a new entry owned by userID
func (s *entryService) Create(userID string, req *models.CreateEntryRequest) (*entities.Entry, error) {
	entry := &entities.Entry{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Type:        entities.EntryType(req.Type),
		Director:    req.Director,
		Budget:      req.Budget,
		Location:    req.Location,
		Duration:    req.Duration,
		YearTime:    req.YearTime,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		UserID:      userID,
	}

	return s.repo.Create(entry)
}

// List returns one page of the caller's entries, newest first
func (s *entryService) List(userID string, query *models.ListEntriesQuery) (*models.EntryListResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 10
	}

	entries, total, err := s.repo.List(userID, repository.ListFilter{
		Search: query.Search,
		Type:   entities.EntryType(query.Type),
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit

	return &models.EntryListResult{
		Entries: entries,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Get returns a single entry owned by the caller
func (s *entryService) Get(userID, id string) (*entities.Entry, error) {
	if s.cache != nil {
		var cached entities.Entry
		if err := s.cache.GetJSON(s.ctx, entryCacheKey(userID, id), &cached); err == nil {
			return &cached, nil
		}
	}

	entry, err := s.repo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(s.ctx, entryCacheKey(userID, id), entry, entryCacheTTL)
	}

	return entry, nil
}

// Update merges the provided fields into the stored entry. Nil fields are
// left unchanged.
func (s *entryService) Update(userID, id string, req *models.UpdateEntryRequest) (*entities.Entry, error) {
	entry, err := s.repo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Type != nil {
		entry.Type = entities.EntryType(*req.Type)
	}
	if req.Director != nil {
		entry.Director = *req.Director
	}
	if req.Budget != nil {
		entry.Budget = *req.Budget
	}
	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.Duration != nil {
		entry.Duration = *req.Duration
	}
	if req.YearTime != nil {
		entry.YearTime = *req.YearTime
	}
	if req.Description != nil {
		entry.Description = req.Description
	}
	if req.ImageURL != nil {
		entry.ImageURL = req.ImageURL
	}

	updated, err := s.repo.Update(entry)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(s.ctx, entryCacheKey(userID, id))
	}

	return updated, nil
}

// Delete removes an entry permanently
func (s *entryService) Delete(userID, id string) error {
	if err := s.repo.Delete(id, userID); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(s.ctx, entryCacheKey(userID, id))
	}

	return nil
}
