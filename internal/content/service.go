package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidInput = errors.New("invalid content input")

type Service interface {
	CreateNotice(ctx context.Context, title, body string) (*Notice, error)
	GetNotice(ctx context.Context, id uuid.UUID) (*Notice, error)
	ListNotices(ctx context.Context, page, limit int) ([]Notice, int, error)
	UpdateNotice(ctx context.Context, n *Notice) error
	DeleteNotice(ctx context.Context, id uuid.UUID) error

	CreateLookbookEntry(ctx context.Context, e *LookbookEntry) (*LookbookEntry, error)
	ListLookbook(ctx context.Context) ([]LookbookEntry, error)
	UpdateLookbookEntry(ctx context.Context, e *LookbookEntry) error
	DeleteLookbookEntry(ctx context.Context, id uuid.UUID) error

	CreateInquiry(ctx context.Context, q *Inquiry) (*Inquiry, error)
	ListInquiries(ctx context.Context, page, limit int) ([]Inquiry, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (s *service) CreateNotice(ctx context.Context, title, body string) (*Notice, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate notice id: %w", err)
	}

	n := &Notice{ID: id, Title: title, Body: body}
	if err := s.repo.CreateNotice(ctx, n); err != nil {
		return nil, fmt.Errorf("service: failed to create notice: %w", err)
	}

	log.Info().Stringer("notice_id", n.ID).Msg("service: notice created")
	return n, nil
}

func (s *service) GetNotice(ctx context.Context, id uuid.UUID) (*Notice, error) {
	n, err := s.repo.GetNotice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch notice: %w", err)
	}
	return n, nil
}

func (s *service) ListNotices(ctx context.Context, page, limit int) ([]Notice, int, error) {
	page, limit = clampPage(page, limit)
	notices, total, err := s.repo.ListNotices(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to list notices: %w", err)
	}
	return notices, total, nil
}

func (s *service) UpdateNotice(ctx context.Context, n *Notice) error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.repo.UpdateNotice(ctx, n); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to update notice: %w", err)
	}
	return nil
}

func (s *service) DeleteNotice(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNotice(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to delete notice: %w", err)
	}
	return nil
}

func (s *service) CreateLookbookEntry(ctx context.Context, e *LookbookEntry) (*LookbookEntry, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate lookbook id: %w", err)
	}
	e.ID = id

	if err := s.repo.CreateLookbookEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("service: failed to create lookbook entry: %w", err)
	}
	return e, nil
}

func (s *service) ListLookbook(ctx context.Context) ([]LookbookEntry, error) {
	entries, err := s.repo.ListLookbook(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list lookbook: %w", err)
	}
	return entries, nil
}

func (s *service) UpdateLookbookEntry(ctx context.Context, e *LookbookEntry) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.repo.UpdateLookbookEntry(ctx, e); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to update lookbook entry: %w", err)
	}
	return nil
}

func (s *service) DeleteLookbookEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteLookbookEntry(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to delete lookbook entry: %w", err)
	}
	return nil
}

func (s *service) CreateInquiry(ctx context.Context, q *Inquiry) (*Inquiry, error) {
	if strings.TrimSpace(q.Name) == "" || strings.TrimSpace(q.Contact) == "" || strings.TrimSpace(q.Message) == "" {
		return nil, fmt.Errorf("%w: name, contact and message are required", ErrInvalidInput)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate inquiry id: %w", err)
	}
	q.ID = id

	if err := s.repo.CreateInquiry(ctx, q); err != nil {
		return nil, fmt.Errorf("service: failed to create inquiry: %w", err)
	}

	log.Info().Stringer("inquiry_id", q.ID).Msg("service: inquiry received")
	return q, nil
}

func (s *service) ListInquiries(ctx context.Context, page, limit int) ([]Inquiry, int, error) {
	page, limit = clampPage(page, limit)
	inquiries, total, err := s.repo.ListInquiries(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to list inquiries: %w", err)
	}
	return inquiries, total, nil
}
