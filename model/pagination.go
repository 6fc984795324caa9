package model

const (
	// DefaultTake is the window size used when the caller does not ask for one.
	DefaultTake = 25
	// MaxTake caps the window size a caller may request.
	MaxTake = 100
)

// ListRequest is a skip/take window over an ordered result set.
type ListRequest struct {
	Skip uint64 `json:"skip"`
	Take uint64 `json:"take"`
}

// Normalize applies the default and the cap. Zero take means "not provided".
func (r ListRequest) Normalize() ListRequest {
	if r.Take == 0 {
		r.Take = DefaultTake
	}
	if r.Take > MaxTake {
		r.Take = MaxTake
	}
	return r
}

// PaginatedResponse carries one window of the result set plus the size of
// the full matching set. Total is independent of the window.
type PaginatedResponse[T any] struct {
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

// Lookup is the minimal reference embedded when one entity appears inside
// another entity's read view. Lookups never embed further lookups.
type Lookup struct {
	ID          uint64 `json:"id"`
	Designation string `json:"designation"`
}
