package service

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-be/internal/entities"
	"catalog-be/internal/models"
	"catalog-be/internal/repository"
)

// fakeEntryRepo is an in-memory EntryRepository scoped by user_id, matching
// the ownership behavior of the Postgres implementation.
type fakeEntryRepo struct {
	entries map[string]*entities.Entry // keyed by entry ID
}

var _ repository.EntryRepository = (*fakeEntryRepo)(nil)

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]*entities.Entry)}
}

func (f *fakeEntryRepo) Create(entry *entities.Entry) (*entities.Entry, error) {
	stored := *entry
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.entries[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeEntryRepo) FindByID(id, userID string) (*entities.Entry, error) {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return nil, repository.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeEntryRepo) List(userID string, filter repository.ListFilter) ([]*entities.Entry, int, error) {
	var matched []*entities.Entry
	for _, entry := range f.entries {
		if entry.UserID != userID {
			continue
		}
		if filter.Type != "" && entry.Type != filter.Type {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(entry.Title), s) &&
				!strings.Contains(strings.ToLower(entry.Director), s) &&
				!strings.Contains(strings.ToLower(entry.Location), s) {
				continue
			}
		}
		matched = append(matched, entry)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakeEntryRepo) Update(entry *entities.Entry) (*entities.Entry, error) {
	existing, ok := f.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return nil, repository.ErrEntryNotFound
	}
	stored := *entry
	stored.UpdatedAt = time.Now()
	f.entries[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeEntryRepo) Delete(id, userID string) error {
	entry, ok := f.entries[id]
	if !ok || entry.UserID != userID {
		return repository.ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

func validCreateRequest(title string) *models.CreateEntryRequest {
	return &models.CreateEntryRequest{
		Title:    title,
		Type:     "MOVIE",
		Director: "Nolan",
		Budget:   "$160M",
		Location: "LA",
		Duration: "148m",
		YearTime: "2010",
	}
}

func TestCreateAndGetEntry(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(), nil)

	created, err := svc.Create("user-a", validCreateRequest("Inception"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "user-a", created.UserID)
	assert.Equal(t, entities.EntryTypeMovie, created.Type)

	got, err := svc.Get("user-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Inception", got.Title)
}

func TestEntryInvisibleToOtherUsers(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(), nil)

	created, err := svc.Create("user-a", validCreateRequest("Inception"))
	require.NoError(t, err)

	// Get, Update and Delete by another user all report not found,
	// indistinguishable from a missing entry
	_, err = svc.Get("user-b", created.ID)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	title := "Hijacked"
	_, err = svc.Update("user-b", created.ID, &models.UpdateEntryRequest{Title: &title})
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	err = svc.Delete("user-b", created.ID)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	// The owner still sees the untouched entry
	got, err := svc.Get("user-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inception", got.Title)
}

func TestListExcludesOtherUsersEntries(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(), nil)

	_, err := svc.Create("user-a", validCreateRequest("Mine"))
	require.NoError(t, err)
	_, err = svc.Create("user-b", validCreateRequest("Theirs"))
	require.NoError(t, err)

	result, err := svc.List("user-a", &models.ListEntriesQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Mine", result.Entries[0].Title)
	assert.Equal(t, 1, result.Pagination.Total)
}

func TestListPagination(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(), nil)

	for i := 0; i < 15; i++ {
		_, err := svc.Create("user-a", validCreateRequest(fmt.Sprintf("Movie %02d", i)))
		require.NoError(t, err)
	}

	page1, err := svc.List("user-a", &models.ListEntriesQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Entries, 10)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 10, Total: 15, TotalPages: 2}, page1.Pagination)

	page2, err := svc.List("user-a", &models.ListEntriesQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Entries, 5)
	assert.Equal(t, 2, page2.Pagination.TotalPages)

	// No entry appears on both pages
	seen := make(map[string]bool)
	for _, e := range page1.Entries {
		seen[e.ID] = true
	}
	for _, e := range page2.Entries {
		assert.False(t, seen[e.ID])
	}
}

func TestListDefaultsAndFilters(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := NewEntryService(repo, nil)

	_, err := svc.Create("user-a", validCreateRequest("Inception"))
	require.NoError(t, err)

	show := validCreateRequest("Breaking Bad")
	show.Type = "TV_SHOW"
	show.Director = "Gilligan"
	show.Location = "Albuquerque"
	_, err = svc.Create("user-a", show)
	require.NoError(t, err)

	// Zero page/limit fall back to 1/10
	result, err := svc.List("user-a", &models.ListEntriesQuery{})
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)

	// Type filter is an exact match
	result, err = svc.List("user-a", &models.ListEntriesQuery{Type: "TV_SHOW"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Breaking Bad", result.Entries[0].Title)

	// Search matches director and location too
	result, err = svc.List("user-a", &models.ListEntriesQuery{Search: "Gilligan"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	result, err = svc.List("user-a", &models.ListEntriesQuery{Search: "Albuquerque"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
}

func TestPartialUpdateLeavesOtherFieldsUnchanged(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(), nil)

	created, err := svc.Create("user-a", validCreateRequest("Inception"))
	require.NoError(t, err)

	title := "Tenet"
	updated, err := svc.Update("user-a", created.ID, &models.UpdateEntryRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Tenet", updated.Title)
	assert.Equal(t, created.Director, updated.Director)
	assert.Equal(t, created.Budget, updated.Budget)
	assert.Equal(t, created.Location, updated.Location)
	assert.Equal(t, created.Duration, updated.Duration)
	assert.Equal(t, created.YearTime, updated.YearTime)
	assert.Equal(t, created.Type, updated.Type)
}

func TestDeleteIsPermanent(t *testing.T) {
	svc := NewEntryService(newFakeEntryRepo(), nil)

	created, err := svc.Create("user-a", validCreateRequest("Inception"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete("user-a", created.ID))

	_, err = svc.Get("user-a", created.ID)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	err = svc.Delete("user-a", created.ID)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)
}
