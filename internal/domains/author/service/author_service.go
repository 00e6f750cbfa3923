package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/shared"
	"locallibrary/internal/shared/utils"
	"locallibrary/pkg/logger"
)

type authorServiceImpl struct {
	repository author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorServiceImpl{
		repository: repo,
	}
}

func (s *authorServiceImpl) List(ctx context.Context) ([]author.Author, error) {
	authors, err := s.repository.List(ctx)
	if err != nil {
		logger.Error("list authors failed", err)
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *authorServiceImpl) GetDetail(ctx context.Context, id primitive.ObjectID) (*author.Detail, error) {
	var (
		a     *author.Author
		books []shared.BookSummary
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		a, err = s.repository.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		books, err = s.repository.FindBooks(egCtx, id)
		return err
	})

	if err := eg.Wait(); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, err
		}
		logger.Error("get author detail failed", err)
		return nil, fmt.Errorf("get author detail: %w", err)
	}

	return &author.Detail{Author: a, Books: books}, nil
}

func (s *authorServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	a, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get author: %w", err)
	}
	return a, nil
}

func (s *authorServiceImpl) Create(ctx context.Context, form *author.AuthorForm) (*author.Author, []shared.FieldError, error) {
	form.Normalize()
	problems, err := utils.FieldErrors(form.Validate(), author.FieldOrder...)
	if err != nil {
		return nil, nil, fmt.Errorf("create author: %w", err)
	}

	draft := form.ToEntity(primitive.NilObjectID)
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Create(ctx, draft); err != nil {
		logger.Error("create author failed", err)
		return nil, nil, fmt.Errorf("create author: %w", err)
	}

	logger.Info("author created", map[string]interface{}{"id": draft.ID.Hex()})
	return draft, nil, nil
}

func (s *authorServiceImpl) Update(ctx context.Context, id primitive.ObjectID, form *author.AuthorForm) (*author.Author, []shared.FieldError, error) {
	// Record phải tồn tại trước khi validate: update record không có => 404
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("update author: %w", err)
	}

	form.Normalize()
	problems, err := utils.FieldErrors(form.Validate(), author.FieldOrder...)
	if err != nil {
		return nil, nil, fmt.Errorf("update author: %w", err)
	}

	draft := form.ToEntity(id)
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Update(ctx, draft); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, nil, err
		}
		logger.Error("update author failed", err)
		return nil, nil, fmt.Errorf("update author: %w", err)
	}

	return draft, nil, nil
}

func (s *authorServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		logger.Error("delete author failed", err)
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}
