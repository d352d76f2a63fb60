package paging

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

// Normalize clamps page to >= 1 and limit into [1, MaxLimit].
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func (p *Page[T]) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

func (p *Page[T]) HasPrev() bool { return p.Page > 1 }
func (p *Page[T]) HasNext() bool { return p.Page < p.TotalPages() }
func (p *Page[T]) Prev() int     { return p.Page - 1 }
func (p *Page[T]) Next() int     { return p.Page + 1 }
func (p *Page[T]) Empty() bool   { return len(p.Items) == 0 }
