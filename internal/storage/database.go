package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/recapdev/recap/internal/domain"
	"github.com/recapdev/recap/internal/review"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// The database is the persistence sink the scheduler hands finished
// sessions to.
var _ review.Recorder = (*DB)(nil)

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// questionExtra carries the type-specific question fields stored as JSON.
type questionExtra struct {
	Options        []string           `json:"options,omitempty"`
	Blanks         []string           `json:"blanks,omitempty"`
	MatchPairs     []domain.MatchPair `json:"match_pairs,omitempty"`
	OrderItems     []string           `json:"order_items,omitempty"`
	CorrectAnswers []string           `json:"correct_answers,omitempty"`
}

// UpsertDeck replaces the stored deck and its questions wholesale.
func (db *DB) UpsertDeck(deck domain.Deck, contentHash string, sourceID int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin deck upsert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO decks (id, name, content_hash, source_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			content_hash = excluded.content_hash,
			source_id = excluded.source_id
	`, deck.ID, deck.Name, contentHash, sourceID)
	if err != nil {
		return fmt.Errorf("failed to upsert deck %s: %w", deck.ID, err)
	}

	if _, err := tx.Exec(`DELETE FROM questions WHERE deck_id = ?`, deck.ID); err != nil {
		return fmt.Errorf("failed to clear questions for deck %s: %w", deck.ID, err)
	}

	for i, q := range deck.Questions {
		extra, err := json.Marshal(questionExtra{
			Options:        q.Options,
			Blanks:         q.Blanks,
			MatchPairs:     q.MatchPairs,
			OrderItems:     q.OrderItems,
			CorrectAnswers: q.CorrectAnswers,
		})
		if err != nil {
			return fmt.Errorf("failed to encode question %d of deck %s: %w", i, deck.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO questions (deck_id, position, type, question, answer, image_url, extra)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, deck.ID, i, string(q.Type), q.Question, q.Answer, q.ImageURL, string(extra))
		if err != nil {
			return fmt.Errorf("failed to insert question %d of deck %s: %w", i, deck.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck upsert for %s: %w", deck.ID, err)
	}
	return nil
}

// GetDeck retrieves a deck and its questions by ID, or nil if absent.
func (db *DB) GetDeck(id string) (*domain.Deck, error) {
	var deck domain.Deck
	row := db.conn.QueryRow(`SELECT id, name FROM decks WHERE id = ?`, id)
	if err := row.Scan(&deck.ID, &deck.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Deck not found
		}
		return nil, fmt.Errorf("failed to find deck %s: %w", id, err)
	}

	rows, err := db.conn.Query(`
		SELECT type, question, answer, image_url, extra
		FROM questions WHERE deck_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for deck %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var q domain.Question
		var typ, extraJSON string
		if err := rows.Scan(&typ, &q.Question, &q.Answer, &q.ImageURL, &extraJSON); err != nil {
			return nil, fmt.Errorf("failed to scan question row for deck %s: %w", id, err)
		}
		q.Type = domain.QuestionType(typ)
		var extra questionExtra
		if err := json.Unmarshal([]byte(extraJSON), &extra); err != nil {
			return nil, fmt.Errorf("failed to decode question extra for deck %s: %w", id, err)
		}
		q.Options = extra.Options
		q.Blanks = extra.Blanks
		q.MatchPairs = extra.MatchPairs
		q.OrderItems = extra.OrderItems
		q.CorrectAnswers = extra.CorrectAnswers
		deck.Questions = append(deck.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions for deck %s: %w", id, err)
	}
	return &deck, nil
}

// DeckContentHash returns the stored content hash for a deck, or "" if the
// deck is not stored.
func (db *DB) DeckContentHash(id string) (string, error) {
	var hash string
	row := db.conn.QueryRow(`SELECT content_hash FROM decks WHERE id = ?`, id)
	if err := row.Scan(&hash); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get content hash for deck %s: %w", id, err)
	}
	return hash, nil
}

// ListDecks retrieves all stored decks without their questions.
func (db *DB) ListDecks() ([]domain.Deck, error) {
	rows, err := db.conn.Query(`SELECT id, name FROM decks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// AppendSession appends one immutable session record to the history.
func (db *DB) AppendSession(s domain.StudySession) error {
	_, err := db.conn.Exec(`
		INSERT INTO sessions (id, deck_id, start_time, end_time,
			cards_reviewed, cards_mastered,
			rating_again, rating_hard, rating_good, rating_easy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID,
		s.DeckID,
		s.StartTime,
		s.EndTime,
		s.CardsReviewed,
		s.CardsMastered,
		s.Ratings.Again,
		s.Ratings.Hard,
		s.Ratings.Good,
		s.Ratings.Easy,
	)
	if err != nil {
		return fmt.Errorf("failed to append session %s: %w", s.ID, err)
	}
	return nil
}

// MergeDailyStat sums the delta into the existing record for its date, or
// inserts a new record if the date has none yet.
func (db *DB) MergeDailyStat(d domain.DailyStat) error {
	_, err := db.conn.Exec(`
		INSERT INTO daily_stats (date, cards_reviewed, cards_mastered, time_spent)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			cards_reviewed = cards_reviewed + excluded.cards_reviewed,
			cards_mastered = cards_mastered + excluded.cards_mastered,
			time_spent = time_spent + excluded.time_spent
	`, d.Date, d.CardsReviewed, d.CardsMastered, d.TimeSpent)
	if err != nil {
		return fmt.Errorf("failed to merge daily stat for %s: %w", d.Date, err)
	}
	return nil
}

// ListSessions retrieves the full session history, oldest first.
func (db *DB) ListSessions() ([]domain.StudySession, error) {
	rows, err := db.conn.Query(`
		SELECT id, deck_id, start_time, end_time,
			cards_reviewed, cards_mastered,
			rating_again, rating_hard, rating_good, rating_easy
		FROM sessions ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		var s domain.StudySession
		if err := rows.Scan(
			&s.ID,
			&s.DeckID,
			&s.StartTime,
			&s.EndTime,
			&s.CardsReviewed,
			&s.CardsMastered,
			&s.Ratings.Again,
			&s.Ratings.Hard,
			&s.Ratings.Good,
			&s.Ratings.Easy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListDailyStats retrieves all daily aggregates, oldest first.
func (db *DB) ListDailyStats() ([]domain.DailyStat, error) {
	rows, err := db.conn.Query(`
		SELECT date, cards_reviewed, cards_mastered, time_spent
		FROM daily_stats ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.DailyStat
	for rows.Next() {
		var d domain.DailyStat
		if err := rows.Scan(&d.Date, &d.CardsReviewed, &d.CardsMastered, &d.TimeSpent); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat row: %w", err)
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// Source represents a deck source, either a local path or a Git URL.
type Source struct {
	ID          int64
	Path        string
	Type        string
	LastScanned sql.NullTime
}

// InsertSource inserts a new source path into the database and returns its ID.
func (db *DB) InsertSource(path, sourceType string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (path, type, last_scanned)
		VALUES (?, ?, NULL)
	`, path, sourceType)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// GetAllSources retrieves all stored sources from the database.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, type, last_scanned
		FROM sources
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Type, &s.LastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// UpdateSourceLastScanned updates the last_scanned timestamp for a source.
func (db *DB) UpdateSourceLastScanned(sourceID int64) error {
	_, err := db.conn.Exec(`
		UPDATE sources
		SET last_scanned = ?
		WHERE id = ?
	`, time.Now(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last scanned for source ID %d: %w", sourceID, err)
	}
	return nil
}
