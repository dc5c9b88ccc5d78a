package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("content not found")

type Repository interface {
	CreateNotice(ctx context.Context, n *Notice) error
	GetNotice(ctx context.Context, id uuid.UUID) (*Notice, error)
	ListNotices(ctx context.Context, limit, offset int) ([]Notice, int, error)
	UpdateNotice(ctx context.Context, n *Notice) error
	DeleteNotice(ctx context.Context, id uuid.UUID) error

	CreateLookbookEntry(ctx context.Context, e *LookbookEntry) error
	ListLookbook(ctx context.Context) ([]LookbookEntry, error)
	UpdateLookbookEntry(ctx context.Context, e *LookbookEntry) error
	DeleteLookbookEntry(ctx context.Context, id uuid.UUID) error

	CreateInquiry(ctx context.Context, q *Inquiry) error
	ListInquiries(ctx context.Context, limit, offset int) ([]Inquiry, int, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateNotice(ctx context.Context, n *Notice) error {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO notices (id, title, body, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.Title, n.Body, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert notice: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetNotice(ctx context.Context, id uuid.UUID) (*Notice, error) {
	var n Notice
	err := r.db.QueryRow(ctx,
		`SELECT id, title, body, created_at, updated_at FROM notices WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select notice %s: %w", id, err)
	}
	return &n, nil
}

func (r *postgresRepository) ListNotices(ctx context.Context, limit, offset int) ([]Notice, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM notices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count notices: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, body, created_at, updated_at FROM notices ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to query notices: %w", err)
	}
	defer rows.Close()

	notices := make([]Notice, 0)
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating notices: %w", err)
	}
	return notices, total, nil
}

func (r *postgresRepository) UpdateNotice(ctx context.Context, n *Notice) error {
	n.UpdatedAt = time.Now().UTC()

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notices SET title = $1, body = $2, updated_at = $3 WHERE id = $4`,
		n.Title, n.Body, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update notice %s: %w", n.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteNotice(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete notice %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) CreateLookbookEntry(ctx context.Context, e *LookbookEntry) error {
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO lookbook_entries (id, title, caption, image, position, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Title, e.Caption, e.Image, e.Position, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert lookbook entry: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListLookbook(ctx context.Context) ([]LookbookEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, caption, image, position, created_at FROM lookbook_entries ORDER BY position ASC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query lookbook: %w", err)
	}
	defer rows.Close()

	entries := make([]LookbookEntry, 0)
	for rows.Next() {
		var e LookbookEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Caption, &e.Image, &e.Position, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan lookbook entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating lookbook entries: %w", err)
	}
	return entries, nil
}

func (r *postgresRepository) UpdateLookbookEntry(ctx context.Context, e *LookbookEntry) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE lookbook_entries SET title = $1, caption = $2, image = $3, position = $4 WHERE id = $5`,
		e.Title, e.Caption, e.Image, e.Position, e.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update lookbook entry %s: %w", e.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteLookbookEntry(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lookbook_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete lookbook entry %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) CreateInquiry(ctx context.Context, q *Inquiry) error {
	q.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO inquiries (id, name, contact, product, sku, type, message, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.Name, q.Contact, q.Product, q.SKU, q.Type, q.Message, q.Source, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert inquiry: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListInquiries(ctx context.Context, limit, offset int) ([]Inquiry, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM inquiries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count inquiries: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, contact, product, sku, type, message, source, created_at
		 FROM inquiries ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to query inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]Inquiry, 0)
	for rows.Next() {
		var q Inquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Contact, &q.Product, &q.SKU, &q.Type, &q.Message, &q.Source, &q.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating inquiries: %w", err)
	}
	return inquiries, total, nil
}
