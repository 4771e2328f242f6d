package search

const DefaultLimit = 50

// Page is a window over a result list.
type Page struct {
	Total   int      `json:"total"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
	Results []Result `json:"results"`
}

// Paginate returns results[offset:offset+limit], clamped to the list. A
// non-positive limit means DefaultLimit.
func Paginate(results []Result, offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := Page{Total: len(results), Offset: offset, Limit: limit, Results: []Result{}}
	if offset >= len(results) {
		return page
	}
	end := min(offset+limit, len(results))
	page.Results = results[offset:end]
	return page
}
