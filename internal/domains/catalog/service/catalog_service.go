package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/domains/catalog"
	"locallibrary/internal/domains/genre"
	"locallibrary/pkg/logger"
)

type catalogServiceImpl struct {
	books     book.Repository
	instances bookinstance.Repository
	authors   author.Repository
	genres    genre.Repository
}

func NewCatalogService(
	books book.Repository,
	instances bookinstance.Repository,
	authors author.Repository,
	genres genre.Repository,
) catalog.Service {
	return &catalogServiceImpl{
		books:     books,
		instances: instances,
		authors:   authors,
		genres:    genres,
	}
}

func (s *catalogServiceImpl) Counts(ctx context.Context) (*catalog.Counts, error) {
	counts := &catalog.Counts{}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		counts.Books, err = s.books.Count(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		counts.Copies, err = s.instances.Count(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		counts.CopiesAvailable, err = s.instances.CountByStatus(egCtx, bookinstance.StatusAvailable)
		return err
	})
	eg.Go(func() (err error) {
		counts.Authors, err = s.authors.Count(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		counts.Genres, err = s.genres.Count(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		logger.Error("catalog counts failed", err)
		return nil, fmt.Errorf("catalog counts: %w", err)
	}
	return counts, nil
}
