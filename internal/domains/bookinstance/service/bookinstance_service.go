package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/shared"
	"locallibrary/internal/shared/utils"
	"locallibrary/pkg/logger"
)

type bookInstanceServiceImpl struct {
	repository bookinstance.Repository
	books      book.Repository
}

func NewBookInstanceService(repo bookinstance.Repository, books book.Repository) bookinstance.Service {
	return &bookInstanceServiceImpl{
		repository: repo,
		books:      books,
	}
}

// ========== READ ==========
func (s *bookInstanceServiceImpl) List(ctx context.Context) ([]bookinstance.View, error) {
	views, err := s.repository.List(ctx)
	if err != nil {
		logger.Error("list book instances failed", err)
		return nil, fmt.Errorf("list book instances: %w", err)
	}
	return views, nil
}

func (s *bookInstanceServiceImpl) GetDetail(ctx context.Context, id primitive.ObjectID) (*bookinstance.View, error) {
	view, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookinstance.ErrBookInstanceNotFound) {
			return nil, err
		}
		logger.Error("get book instance failed", err)
		return nil, fmt.Errorf("get book instance: %w", err)
	}
	return view, nil
}

func (s *bookInstanceServiceImpl) FormOptions(ctx context.Context) ([]shared.BookSummary, error) {
	books, err := s.books.ListSummaries(ctx)
	if err != nil {
		logger.Error("load book instance form options failed", err)
		return nil, fmt.Errorf("book instance form options: %w", err)
	}
	return books, nil
}

// ========== CREATE ==========
func (s *bookInstanceServiceImpl) Create(ctx context.Context, form *bookinstance.BookInstanceForm) (*bookinstance.BookInstance, []shared.FieldError, error) {
	draft, problems, err := s.validate(ctx, primitive.NilObjectID, form)
	if err != nil {
		return nil, nil, fmt.Errorf("create book instance: %w", err)
	}
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Create(ctx, draft); err != nil {
		logger.Error("create book instance failed", err)
		return nil, nil, fmt.Errorf("create book instance: %w", err)
	}

	logger.Info("book instance created", map[string]interface{}{
		"id":     draft.ID.Hex(),
		"book":   draft.Book.Hex(),
		"status": draft.Status,
	})
	return draft, nil, nil
}

// ========== UPDATE ==========
func (s *bookInstanceServiceImpl) Update(ctx context.Context, id primitive.ObjectID, form *bookinstance.BookInstanceForm) (*bookinstance.BookInstance, []shared.FieldError, error) {
	// Record phải tồn tại trước khi validate: update record không có => 404
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		if errors.Is(err, bookinstance.ErrBookInstanceNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("update book instance: %w", err)
	}

	draft, problems, err := s.validate(ctx, id, form)
	if err != nil {
		return nil, nil, fmt.Errorf("update book instance: %w", err)
	}
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Update(ctx, draft); err != nil {
		if errors.Is(err, bookinstance.ErrBookInstanceNotFound) {
			return nil, nil, err
		}
		logger.Error("update book instance failed", err)
		return nil, nil, fmt.Errorf("update book instance: %w", err)
	}

	return draft, nil, nil
}

func (s *bookInstanceServiceImpl) validate(ctx context.Context, id primitive.ObjectID, form *bookinstance.BookInstanceForm) (*bookinstance.BookInstance, []shared.FieldError, error) {
	form.Normalize()
	problems, err := utils.FieldErrors(form.Validate(), bookinstance.FieldOrder...)
	if err != nil {
		return nil, nil, err
	}

	draft := form.ToEntity(id)
	if len(problems) > 0 {
		return draft, problems, nil
	}

	exists, err := s.books.Exists(ctx, draft.Book)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		problems = append(problems, shared.FieldError{Field: "book", Message: "Book not found"})
	}

	return draft, problems, nil
}

// ========== DELETE ==========
func (s *bookInstanceServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		logger.Error("delete book instance failed", err)
		return fmt.Errorf("delete book instance: %w", err)
	}
	return nil
}
