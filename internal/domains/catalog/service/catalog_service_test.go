package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/domains/catalog"
	"locallibrary/internal/domains/catalog/service"
	"locallibrary/internal/domains/genre"
	"locallibrary/internal/testutil/memstore"
)

func seed(t *testing.T, store *memstore.Store) {
	t.Helper()
	ctx := context.Background()

	a := &author.Author{FirstName: "Isaac", FamilyName: "Asimov"}
	require.NoError(t, store.Authors().Create(ctx, a))
	require.NoError(t, store.Genres().Create(ctx, &genre.Genre{Name: "Science Fiction"}))

	b := &book.Book{Title: "Foundation", Author: a.ID}
	require.NoError(t, store.Books().Create(ctx, b))

	for _, status := range []string{bookinstance.StatusAvailable, bookinstance.StatusAvailable, bookinstance.StatusLoaned} {
		require.NoError(t, store.BookInstances().Create(ctx, &bookinstance.BookInstance{
			Book: b.ID, Imprint: "Gnome Press", Status: status,
		}))
	}
}

func newService(store *memstore.Store) catalog.Service {
	return service.NewCatalogService(store.Books(), store.BookInstances(), store.Authors(), store.Genres())
}

func TestCatalogService_Counts(t *testing.T) {
	store := memstore.New()
	seed(t, store)

	counts, err := newService(store).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &catalog.Counts{
		Books:           1,
		Copies:          3,
		CopiesAvailable: 2,
		Authors:         1,
		Genres:          1,
	}, counts)
}

func TestCatalogService_CountsEmpty(t *testing.T) {
	counts, err := newService(memstore.New()).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &catalog.Counts{}, counts)
}

// memoryCache là cache.Cache tối giản, lưu JSON như RedisCache
type memoryCache struct {
	data    map[string][]byte
	gets    int
	failGet bool
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.gets++
	if m.failGet {
		return false, errors.New("cache down")
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Ping(context.Context) error                          { return nil }
func (m *memoryCache) Increment(context.Context, string) (int64, error)    { return 0, nil }
func (m *memoryCache) Expire(context.Context, string, time.Duration) error { return nil }
func (m *memoryCache) TTL(context.Context, string) (time.Duration, error)  { return 0, nil }

func TestCachedCatalogService_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seed(t, store)

	c := &memoryCache{data: map[string][]byte{}}
	svc := service.NewCachedCatalogService(newService(store), c, time.Minute)

	first, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Books)

	// Thêm book mới: trong TTL vẫn trả về số liệu đã cache
	require.NoError(t, store.Books().Create(ctx, &book.Book{Title: "Robots", Author: primitive.NewObjectID()}))

	second, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, c.gets)
}

func TestCachedCatalogService_FallsBackWhenCacheFails(t *testing.T) {
	store := memstore.New()
	seed(t, store)

	c := &memoryCache{data: map[string][]byte{}, failGet: true}
	svc := service.NewCachedCatalogService(newService(store), c, time.Minute)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Copies)
}
