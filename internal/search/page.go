package search

// PageMeta is the standard pagination metadata attached to every ordered
// result list. The invariants are:
//
//	count      = min(limit, max(0, total_matches - offset))
//	has_more   = (offset + count) < total_matches
//	next_offset = offset + limit when has_more, null otherwise
type PageMeta struct {
	TotalMatches int  `json:"total_matches"`
	Offset       int  `json:"offset"`
	Limit        int  `json:"limit"`
	Count        int  `json:"count"`
	HasMore      bool `json:"has_more"`
	NextOffset   *int `json:"next_offset"`
}

// PageWindow returns the [start, end) slice bounds selecting the requested
// page from a list of total items. Out-of-range offsets yield an empty
// window (start == end).
func PageWindow(total, offset, limit int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end = offset + limit
	if limit < 0 || end > total {
		end = total
	}
	return offset, end
}

// BuildPageMeta computes pagination metadata for a page of count items
// selected at offset/limit from total matches.
func BuildPageMeta(total, offset, limit, count int) PageMeta {
	meta := PageMeta{
		TotalMatches: total,
		Offset:       offset,
		Limit:        limit,
		Count:        count,
		HasMore:      offset+count < total,
	}
	if meta.HasMore {
		next := offset + limit
		meta.NextOffset = &next
	}
	return meta
}

// Page slices one page out of an ordered list and returns it with its
// metadata. The input must already be filtered and sorted; Page never
// reorders.
func Page[T any](items []T, offset, limit int) ([]T, PageMeta) {
	start, end := PageWindow(len(items), offset, limit)
	page := items[start:end]
	return page, BuildPageMeta(len(items), offset, limit, len(page))
}
