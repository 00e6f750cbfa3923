package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/genre"
	"locallibrary/internal/shared"
	"locallibrary/internal/shared/utils"
	"locallibrary/pkg/logger"
)

type bookServiceImpl struct {
	repository book.Repository
	authors    author.Repository
	genres     genre.Repository
}

// NewBookService: cross-domain dependency với author và genre repositories
// để resolve references và check integrity khi ghi
func NewBookService(repo book.Repository, authors author.Repository, genres genre.Repository) book.Service {
	return &bookServiceImpl{
		repository: repo,
		authors:    authors,
		genres:     genres,
	}
}

// ========== READ: List ==========
func (s *bookServiceImpl) List(ctx context.Context) ([]book.ListItem, error) {
	books, err := s.repository.List(ctx)
	if err != nil {
		logger.Error("list books failed", err)
		return nil, fmt.Errorf("list books: %w", err)
	}

	// Populate author: 1 query cho toàn bộ list
	ids := make([]primitive.ObjectID, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.Author)
	}
	authors, err := s.authors.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("populate book authors failed", err)
		return nil, fmt.Errorf("list books: %w", err)
	}
	byID := make(map[primitive.ObjectID]*author.Author, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}

	items := make([]book.ListItem, 0, len(books))
	for _, b := range books {
		items = append(items, book.ListItem{Book: b, Author: byID[b.Author]})
	}
	return items, nil
}

// ========== READ: GetDetail ==========
func (s *bookServiceImpl) GetDetail(ctx context.Context, id primitive.ObjectID) (*book.Detail, error) {
	detail := &book.Detail{}

	// Round 1: book + copies (độc lập)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		detail.Book, err = s.repository.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		detail.Copies, err = s.repository.FindCopies(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, err
		}
		logger.Error("get book detail failed", err)
		return nil, fmt.Errorf("get book detail: %w", err)
	}

	// Round 2: author + genres, phụ thuộc vào book
	eg, egCtx = errgroup.WithContext(ctx)
	eg.Go(func() error {
		a, err := s.authors.FindByID(egCtx, detail.Book.Author)
		if errors.Is(err, author.ErrAuthorNotFound) {
			// Dangling reference, hiển thị book không có author
			return nil
		}
		detail.Author = a
		return err
	})
	eg.Go(func() error {
		var err error
		detail.Genres, err = s.genres.FindByIDs(egCtx, detail.Book.Genre)
		return err
	})
	if err := eg.Wait(); err != nil {
		logger.Error("populate book detail failed", err)
		return nil, fmt.Errorf("get book detail: %w", err)
	}

	return detail, nil
}

// ========== READ: GetByID ==========
func (s *bookServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	b, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// ========== READ: FormOptions ==========
func (s *bookServiceImpl) FormOptions(ctx context.Context) (*book.FormOptions, error) {
	opts := &book.FormOptions{}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		opts.Authors, err = s.authors.List(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		opts.Genres, err = s.genres.List(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		logger.Error("load book form options failed", err)
		return nil, fmt.Errorf("book form options: %w", err)
	}

	return opts, nil
}

// ========== CREATE ==========
func (s *bookServiceImpl) Create(ctx context.Context, form *book.BookForm) (*book.Book, []shared.FieldError, error) {
	draft, problems, err := s.validate(ctx, primitive.NilObjectID, form)
	if err != nil {
		return nil, nil, fmt.Errorf("create book: %w", err)
	}
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Create(ctx, draft); err != nil {
		logger.Error("create book failed", err)
		return nil, nil, fmt.Errorf("create book: %w", err)
	}

	logger.Info("book created", map[string]interface{}{"id": draft.ID.Hex()})
	return draft, nil, nil
}

// ========== UPDATE ==========
func (s *bookServiceImpl) Update(ctx context.Context, id primitive.ObjectID, form *book.BookForm) (*book.Book, []shared.FieldError, error) {
	// Record phải tồn tại trước khi validate: update record không có => 404
	exists, err := s.repository.Exists(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("update book: %w", err)
	}
	if !exists {
		return nil, nil, book.ErrBookNotFound
	}

	draft, problems, err := s.validate(ctx, id, form)
	if err != nil {
		return nil, nil, fmt.Errorf("update book: %w", err)
	}
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if err := s.repository.Update(ctx, draft); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, nil, err
		}
		logger.Error("update book failed", err)
		return nil, nil, fmt.Errorf("update book: %w", err)
	}

	return draft, nil, nil
}

// validate chạy field rules, sau đó (chỉ khi field rules pass) check author
// và genres có tồn tại không. Reference không tồn tại => field error, không phải 404.
func (s *bookServiceImpl) validate(ctx context.Context, id primitive.ObjectID, form *book.BookForm) (*book.Book, []shared.FieldError, error) {
	form.Normalize()
	problems, err := utils.FieldErrors(form.Validate(), book.FieldOrder...)
	if err != nil {
		return nil, nil, err
	}

	draft := form.ToEntity(id)
	if len(problems) > 0 {
		return draft, problems, nil
	}

	if _, err := s.authors.FindByID(ctx, draft.Author); err != nil {
		if !errors.Is(err, author.ErrAuthorNotFound) {
			return nil, nil, err
		}
		problems = append(problems, shared.FieldError{Field: "author", Message: "Author not found."})
	}

	if len(draft.Genre) > 0 {
		found, err := s.genres.FindByIDs(ctx, draft.Genre)
		if err != nil {
			return nil, nil, err
		}
		if len(found) != len(uniqueIDs(draft.Genre)) {
			problems = append(problems, shared.FieldError{Field: "genre", Message: "Genre not found."})
		}
	}

	return draft, problems, nil
}

// ========== DELETE ==========
// Guarded delete: book còn copies thì không xóa
func (s *bookServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) (*book.DeleteResult, error) {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return &book.DeleteResult{}, nil
		}
		return nil, err
	}

	if len(detail.Copies) > 0 {
		logger.Info("book delete blocked", map[string]interface{}{
			"id":     id.Hex(),
			"copies": len(detail.Copies),
		})
		return &book.DeleteResult{Blocked: true, Detail: detail}, nil
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		logger.Error("delete book failed", err)
		return nil, fmt.Errorf("delete book: %w", err)
	}

	return &book.DeleteResult{}, nil
}

func uniqueIDs(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
