// Package store defines the storage interface and SQLite implementation.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/voyago/tripagent/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	GetOrCreateConversation(ctx context.Context, conversationID, userID string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error)

	// Message operations
	AppendMessage(ctx context.Context, msg *domain.Message) error
	GetContext(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)

	// Roadmap operations
	GetOrCreateRoadmap(ctx context.Context, userID, title string) (*domain.Roadmap, error)

	// Trip record operations. The tx-scoped inserts back the tool adapters'
	// commit-or-rollback contract.
	BeginTx(ctx context.Context) (*sql.Tx, error)
	InsertTicket(ctx context.Context, tx *sql.Tx, ticket *domain.Ticket) error
	InsertAccommodation(ctx context.Context, tx *sql.Tx, acc *domain.Accommodation) error
	InsertPlace(ctx context.Context, tx *sql.Tx, place *domain.Place) error
	ListTickets(ctx context.Context, roadmapID int64) ([]domain.Ticket, error)
	ListAccommodations(ctx context.Context, roadmapID int64) ([]domain.Accommodation, error)
	ListPlaces(ctx context.Context, roadmapID int64) ([]domain.Place, error)

	// Lifecycle
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS chat_conversations (
			conversation_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_updated DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES chat_conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_conversation ON chat_messages(conversation_id, id)`,
		`CREATE TABLE IF NOT EXISTS roadmaps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			destination TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_roadmaps_user ON roadmaps(user_id)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			roadmap_id INTEGER NOT NULL,
			type TEXT,
			"from" TEXT,
			"to" TEXT,
			departure TEXT,
			arrival TEXT,
			price INTEGER,
			provider_url TEXT,
			FOREIGN KEY (roadmap_id) REFERENCES roadmaps(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_roadmap ON tickets(roadmap_id)`,
		`CREATE TABLE IF NOT EXISTS accommodations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			roadmap_id INTEGER NOT NULL,
			name TEXT,
			check_in DATETIME,
			check_out DATETIME,
			price_total INTEGER,
			location TEXT,
			provider_url TEXT,
			FOREIGN KEY (roadmap_id) REFERENCES roadmaps(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accommodations_roadmap ON accommodations(roadmap_id)`,
		`CREATE TABLE IF NOT EXISTS places (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			roadmap_id INTEGER NOT NULL,
			name TEXT,
			category TEXT,
			location TEXT,
			duration_min INTEGER,
			rating REAL,
			url TEXT,
			FOREIGN KEY (roadmap_id) REFERENCES roadmaps(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_places_roadmap ON places(roadmap_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation creates a new conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_conversations (conversation_id, user_id, created_at, last_updated) VALUES (?, ?, ?, ?)`,
		conv.ConversationID, conv.UserID, conv.CreatedAt, conv.LastUpdated)
	return err
}

// GetConversation retrieves a conversation by ID.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, user_id, created_at, last_updated FROM chat_conversations WHERE conversation_id = ?`,
		conversationID).Scan(&conv.ConversationID, &conv.UserID, &conv.CreatedAt, &conv.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetOrCreateConversation gets an existing conversation or creates a new one.
func (s *SQLiteStore) GetOrCreateConversation(ctx context.Context, conversationID, userID string) (*domain.Conversation, error) {
	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	now := time.Now()
	conv = &domain.Conversation{
		ConversationID: conversationID,
		UserID:         userID,
		CreatedAt:      now,
		LastUpdated:    now,
	}
	if err := s.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListConversations lists a user's conversations, newest first.
func (s *SQLiteStore) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, user_id, created_at, last_updated FROM chat_conversations WHERE user_id = ? ORDER BY last_updated DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(&conv.ConversationID, &conv.UserID, &conv.CreatedAt, &conv.LastUpdated); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// AppendMessage appends a message to a conversation and bumps its
// last_updated marker.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (conversation_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		msg.ID = id
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE chat_conversations SET last_updated = ? WHERE conversation_id = ?`,
		msg.CreatedAt, msg.ConversationID)
	return err
}

// GetContext retrieves the most recent limit messages of a conversation in
// chronological order. Truncation keeps the tail, never the head.
func (s *SQLiteStore) GetContext(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	query := `SELECT id, conversation_id, role, content, created_at FROM chat_messages WHERE conversation_id = ? ORDER BY id DESC`
	args := []interface{}{conversationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows came newest-first; restore chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// GetOrCreateRoadmap returns the user's roadmap, creating an empty one on
// first use.
func (s *SQLiteStore) GetOrCreateRoadmap(ctx context.Context, userID, title string) (*domain.Roadmap, error) {
	var roadmap domain.Roadmap
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, destination, created_at FROM roadmaps WHERE user_id = ? ORDER BY id LIMIT 1`,
		userID).Scan(&roadmap.ID, &roadmap.UserID, &roadmap.Title, &roadmap.Destination, &roadmap.CreatedAt)
	if err == nil {
		return &roadmap, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO roadmaps (user_id, title, destination, created_at) VALUES (?, ?, '', ?)`,
		userID, title, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Roadmap{ID: id, UserID: userID, Title: title, CreatedAt: now}, nil
}

// BeginTx starts a transaction for tool-adapter writes.
func (s *SQLiteStore) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// InsertTicket inserts a summarized ticket row inside the given transaction.
func (s *SQLiteStore) InsertTicket(ctx context.Context, tx *sql.Tx, ticket *domain.Ticket) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (roadmap_id, type, "from", "to", departure, arrival, price, provider_url) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.RoadmapID, ticket.Type, ticket.From, ticket.To, ticket.Departure, ticket.Arrival, ticket.Price, ticket.ProviderURL)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		ticket.ID = id
	}
	return nil
}

// InsertAccommodation inserts an accommodation row inside the given transaction.
func (s *SQLiteStore) InsertAccommodation(ctx context.Context, tx *sql.Tx, acc *domain.Accommodation) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO accommodations (roadmap_id, name, check_in, check_out, price_total, location, provider_url) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		acc.RoadmapID, acc.Name, acc.CheckIn, acc.CheckOut, acc.PriceTotal, acc.Location, acc.ProviderURL)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		acc.ID = id
	}
	return nil
}

// InsertPlace inserts a place row inside the given transaction.
func (s *SQLiteStore) InsertPlace(ctx context.Context, tx *sql.Tx, place *domain.Place) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO places (roadmap_id, name, category, location, duration_min, rating, url) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		place.RoadmapID, place.Name, place.Category, place.Location, place.DurationMin, place.Rating, place.URL)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		place.ID = id
	}
	return nil
}

// ListTickets retrieves the ticket rows for a roadmap.
func (s *SQLiteStore) ListTickets(ctx context.Context, roadmapID int64) ([]domain.Ticket, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, roadmap_id, type, "from", "to", departure, arrival, price, provider_url FROM tickets WHERE roadmap_id = ? ORDER BY id`,
		roadmapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.RoadmapID, &t.Type, &t.From, &t.To, &t.Departure, &t.Arrival, &t.Price, &t.ProviderURL); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// ListAccommodations retrieves the accommodation rows for a roadmap.
func (s *SQLiteStore) ListAccommodations(ctx context.Context, roadmapID int64) ([]domain.Accommodation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, roadmap_id, name, check_in, check_out, price_total, location, provider_url FROM accommodations WHERE roadmap_id = ? ORDER BY id`,
		roadmapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accommodations []domain.Accommodation
	for rows.Next() {
		var a domain.Accommodation
		if err := rows.Scan(&a.ID, &a.RoadmapID, &a.Name, &a.CheckIn, &a.CheckOut, &a.PriceTotal, &a.Location, &a.ProviderURL); err != nil {
			return nil, err
		}
		accommodations = append(accommodations, a)
	}
	return accommodations, rows.Err()
}

// ListPlaces retrieves the place rows for a roadmap.
func (s *SQLiteStore) ListPlaces(ctx context.Context, roadmapID int64) ([]domain.Place, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, roadmap_id, name, category, location, duration_min, rating, url FROM places WHERE roadmap_id = ? ORDER BY id`,
		roadmapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.RoadmapID, &p.Name, &p.Category, &p.Location, &p.DurationMin, &p.Rating, &p.URL); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}
