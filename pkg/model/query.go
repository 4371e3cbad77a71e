package model

// ListQuery carries the per-request options for listing records. Filter values
// are matched by equality exactly as given. Sort directions are 1 (ascending)
// or -1 (descending); anything else is rejected at parse time.
type ListQuery struct {
	Filter map[string]string
	Sort   map[string]int
	Page   int
	Limit  int
}

func (q ListQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}
