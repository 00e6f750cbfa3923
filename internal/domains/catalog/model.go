package catalog

import "context"

// Counts là số liệu hiển thị trên trang chủ catalog
type Counts struct {
	Books           int64
	Copies          int64
	CopiesAvailable int64
	Authors         int64
	Genres          int64
}

// Service defines the catalog home page logic
type Service interface {
	// Counts runs every count concurrently; lỗi đầu tiên sẽ hủy các count còn lại
	Counts(ctx context.Context) (*Counts, error)
}
