package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"locallibrary/internal/domains/genre"
	"locallibrary/internal/shared"
	"locallibrary/internal/shared/utils"
	"locallibrary/pkg/logger"
)

type genreServiceImpl struct {
	repository genre.Repository
}

func NewGenreService(repo genre.Repository) genre.Service {
	return &genreServiceImpl{
		repository: repo,
	}
}

// ========== READ: List ==========
func (s *genreServiceImpl) List(ctx context.Context) ([]genre.Genre, error) {
	genres, err := s.repository.List(ctx)
	if err != nil {
		logger.Error("list genres failed", err)
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// ========== READ: GetDetail ==========
// Genre và books được fetch song song, không phụ thuộc nhau
func (s *genreServiceImpl) GetDetail(ctx context.Context, id primitive.ObjectID) (*genre.Detail, error) {
	var (
		g     *genre.Genre
		books []shared.BookSummary
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = s.repository.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		books, err = s.repository.FindBooks(egCtx, id)
		return err
	})

	if err := eg.Wait(); err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			return nil, err
		}
		logger.Error("get genre detail failed", err)
		return nil, fmt.Errorf("get genre detail: %w", err)
	}

	return &genre.Detail{Genre: g, Books: books}, nil
}

// ========== READ: GetByID ==========
func (s *genreServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*genre.Genre, error) {
	g, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return g, nil
}

// ========== CREATE ==========
func (s *genreServiceImpl) Create(ctx context.Context, form *genre.GenreForm) (*genre.Genre, []shared.FieldError, error) {
	// ========== STEP 1: Validate Input ==========
	form.Normalize()
	problems, err := utils.FieldErrors(form.Validate(), "name")
	if err != nil {
		return nil, nil, fmt.Errorf("create genre: %w", err)
	}

	draft := form.ToEntity(primitive.NilObjectID)
	if len(problems) > 0 {
		return draft, problems, nil
	}

	// ========== STEP 2: Check Name Unique ==========
	// Lookup-then-insert, không có unique index: hai request đồng thời
	// cùng tên vẫn có thể cùng insert thành công
	existing, err := s.repository.FindByName(ctx, draft.Name)
	switch {
	case err == nil:
		logger.Info("genre already exists, reusing", map[string]interface{}{
			"name": draft.Name,
			"id":   existing.ID.Hex(),
		})
		return existing, nil, nil
	case !errors.Is(err, genre.ErrGenreNotFound):
		logger.Error("check genre name failed", err)
		return nil, nil, fmt.Errorf("create genre: %w", err)
	}

	// ========== STEP 3: Save ==========
	if err := s.repository.Create(ctx, draft); err != nil {
		logger.Error("create genre failed", err)
		return nil, nil, fmt.Errorf("create genre: %w", err)
	}

	logger.Info("genre created", map[string]interface{}{"id": draft.ID.Hex()})
	return draft, nil, nil
}

// ========== UPDATE ==========
func (s *genreServiceImpl) Update(ctx context.Context, id primitive.ObjectID, form *genre.GenreForm) (*genre.Genre, []shared.FieldError, error) {
	// Record phải tồn tại trước khi validate: update record không có => 404
	if _, err := s.repository.FindByID(ctx, id); err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("update genre: %w", err)
	}

	form.Normalize()
	problems, err := utils.FieldErrors(form.Validate(), "name")
	if err != nil {
		return nil, nil, fmt.Errorf("update genre: %w", err)
	}

	draft := form.ToEntity(id)
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Update(ctx, draft); err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			return nil, nil, err
		}
		logger.Error("update genre failed", err)
		return nil, nil, fmt.Errorf("update genre: %w", err)
	}

	return draft, nil, nil
}

// ========== DELETE ==========
// Guarded delete: check lại books trước khi xóa (read-then-delete, không có
// transaction nên một book được tạo đồng thời vẫn có thể lọt qua)
func (s *genreServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*genre.DeleteResult, error) {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			return &genre.DeleteResult{}, nil
		}
		return nil, err
	}

	if len(detail.Books) > 0 {
		logger.Info("genre delete blocked", map[string]interface{}{
			"id":    id.Hex(),
			"books": len(detail.Books),
		})
		return &genre.DeleteResult{Blocked: true, Detail: detail}, nil
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		logger.Error("delete genre failed", err)
		return nil, fmt.Errorf("delete genre: %w", err)
	}

	return &genre.DeleteResult{}, nil
}
