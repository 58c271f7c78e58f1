// Package store persists generated blog posts in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"vidscribe/internal/blog"
)

// ErrNotFound is returned when no post exists for the requested id.
var ErrNotFound = errors.New("post not found")

// Post is a stored blog post. List fields round-trip through JSON columns.
type Post struct {
	ID              string
	VideoTitle      string
	Model           string
	Title           string
	Content         string
	Summary         string
	Sections        []blog.Section
	Tags            []string
	MetaDescription string
	KeyTakeaways    []string
	Keywords        []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Store manages the posts database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New creates or opens the post store at dbPath, creating parent
// directories as needed.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		video_title TEXT NOT NULL,
		model TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		summary TEXT,
		sections_json TEXT,
		tags_json TEXT,
		meta_description TEXT,
		key_takeaways_json TEXT,
		keywords_json TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePost inserts a new post and returns its generated id.
func (s *Store) SavePost(ctx context.Context, p *Post) (string, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	sections, err := marshalJSON(p.Sections)
	if err != nil {
		return "", err
	}
	tags, err := marshalJSON(p.Tags)
	if err != nil {
		return "", err
	}
	takeaways, err := marshalJSON(p.KeyTakeaways)
	if err != nil {
		return "", err
	}
	keywords, err := marshalJSON(p.Keywords)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (id, video_title, model, title, content, summary,
			sections_json, tags_json, meta_description, key_takeaways_json,
			keywords_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.VideoTitle, p.Model, p.Title, p.Content, p.Summary,
		sections, tags, p.MetaDescription, takeaways, keywords,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save post: %w", err)
	}
	return p.ID, nil
}

// GetPost loads one post by id.
func (s *Store) GetPost(ctx context.Context, id string) (*Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, video_title, model, title, content, summary,
			sections_json, tags_json, meta_description, key_takeaways_json,
			keywords_json, created_at, updated_at
		FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// ListPosts returns posts newest first, up to limit (0 means no limit).
func (s *Store) ListPosts(ctx context.Context, limit int) ([]*Post, error) {
	query := `
		SELECT id, video_title, model, title, content, summary,
			sections_json, tags_json, meta_description, key_takeaways_json,
			keywords_json, created_at, updated_at
		FROM posts ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdatePost rewrites a post's content fields. The id, video title, model,
// and created_at are immutable.
func (s *Store) UpdatePost(ctx context.Context, p *Post) error {
	sections, err := marshalJSON(p.Sections)
	if err != nil {
		return err
	}
	tags, err := marshalJSON(p.Tags)
	if err != nil {
		return err
	}
	takeaways, err := marshalJSON(p.KeyTakeaways)
	if err != nil {
		return err
	}
	keywords, err := marshalJSON(p.Keywords)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET title = ?, content = ?, summary = ?, sections_json = ?,
			tags_json = ?, meta_description = ?, key_takeaways_json = ?,
			keywords_json = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Content, p.Summary, sections, tags, p.MetaDescription,
		takeaways, keywords, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*Post, error) {
	var p Post
	var sections, tags, takeaways, keywords sql.NullString
	var summary, meta sql.NullString

	err := row.Scan(&p.ID, &p.VideoTitle, &p.Model, &p.Title, &p.Content,
		&summary, &sections, &tags, &meta, &takeaways, &keywords,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	p.Summary = summary.String
	p.MetaDescription = meta.String
	unmarshalJSON(sections, &p.Sections)
	unmarshalJSON(tags, &p.Tags)
	unmarshalJSON(takeaways, &p.KeyTakeaways)
	unmarshalJSON(keywords, &p.Keywords)
	return &p, nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal field: %w", err)
	}
	return string(data), nil
}

func unmarshalJSON[T any](col sql.NullString, dst *T) {
	if !col.Valid || col.String == "" || col.String == "null" {
		return
	}
	// Corrupt JSON in a list column degrades to an empty list rather than
	// failing the whole read.
	_ = json.Unmarshal([]byte(col.String), dst)
}
