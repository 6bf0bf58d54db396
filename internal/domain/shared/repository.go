package shared

// PageBounds turns a 1-based page and a page size into LIMIT and OFFSET.
// A non-positive size falls back to defaultSize.
func PageBounds(page, size, defaultSize int) (limit, offset int) {
	if size <= 0 {
		size = defaultSize
	}
	if page < 1 {
		page = 1
	}
	return size, (page - 1) * size
}

// TotalPages returns ceil(total/pageSize), or 0 when pageSize is not positive
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
