package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-be/internal/entities"
)

// ErrEntryNotFound is returned when no entry matches (id, user_id). A caller
// cannot tell a missing entry from another user's entry.
var ErrEntryNotFound = errors.New("entry not found")

// ListFilter narrows a paginated entry listing
type ListFilter struct {
	Search string             // substring match over title, director, location
	Type   entities.EntryType // exact match when non-empty
	Offset int
	Limit  int
}

// EntryRepository defines the interface for entry database operations.
// Every query is scoped by user_id; ownership is never checked by id alone.
type EntryRepository interface {
	Create(entry *entities.Entry) (*entities.Entry, error)
	FindByID(id, userID string) (*entities.Entry, error)
	List(userID string, filter ListFilter) ([]*entities.Entry, int, error)
	Update(entry *entities.Entry) (*entities.Entry, error)
	Delete(id, userID string) error
}

type entryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = "id, title, type, director, budget, location, duration, year_time, description, image_url, user_id, created_at, updated_at"

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike neutralizes LIKE wildcards in a user-supplied search term so a
// search for "100%" matches the literal string, not everything.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanEntry(row interface{ Scan(...interface{}) error }) (*entities.Entry, error) {
	var e entities.Entry
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Type,
		&e.Director,
		&e.Budget,
		&e.Location,
		&e.Duration,
		&e.YearTime,
		&e.Description,
		&e.ImageURL,
		&e.UserID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new entry into the database
func (r *entryRepository) Create(entry *entities.Entry) (*entities.Entry, error) {
	query := `
		INSERT INTO entries (id, title, type, director, budget, location, duration, year_time, description, image_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + entryColumns

	created, err := scanEntry(r.db.QueryRow(query,
		entry.ID,
		entry.Title,
		entry.Type,
		entry.Director,
		entry.Budget,
		entry.Location,
		entry.Duration,
		entry.YearTime,
		entry.Description,
		entry.ImageURL,
		entry.UserID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return created, nil
}

// FindByID finds an entry by id, only if owned by the given user
func (r *entryRepository) FindByID(id, userID string) (*entities.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE id = $1 AND user_id = $2"

	entry, err := scanEntry(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}

	return entry, nil
}

// List returns one page of the user's entries, newest first, plus the total
// count matching the filter.
func (r *entryRepository) List(userID string, filter ListFilter) ([]*entities.Entry, int, error) {
	where := "WHERE user_id = $1"
	args := []interface{}{userID}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR director ILIKE $%d OR location ILIKE $%d)", n, n, n)
	}

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM entries "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT "+entryColumns+" FROM entries %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, total, nil
}

// Update persists a fully merged entry. The WHERE clause re-checks ownership
// so a row that changed hands (or vanished) since the read is not touched.
func (r *entryRepository) Update(entry *entities.Entry) (*entities.Entry, error) {
	query := `
		UPDATE entries
		SET title = $1, type = $2, director = $3, budget = $4, location = $5,
		    duration = $6, year_time = $7, description = $8, image_url = $9,
		    updated_at = NOW()
		WHERE id = $10 AND user_id = $11
		RETURNING ` + entryColumns

	updated, err := scanEntry(r.db.QueryRow(query,
		entry.Title,
		entry.Type,
		entry.Director,
		entry.Budget,
		entry.Location,
		entry.Duration,
		entry.YearTime,
		entry.Description,
		entry.ImageURL,
		entry.ID,
		entry.UserID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return updated, nil
}

// Delete removes an entry permanently, only if owned by the given user
func (r *entryRepository) Delete(id, userID string) error {
	result, err := r.db.Exec("DELETE FROM entries WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
