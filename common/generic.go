package common

// Contains returns whether `v` is in `slice`.
func Contains[T comparable](slice []T, v T) bool {
	for i := range slice {
		if slice[i] == v {
			return true
		}
	}
	return false
}

// Page returns the page-th (0-indexed) chunk of size perPage from slice,
// and the total number of pages. page is clamped to the valid range.
func Page[T any](slice []T, page, perPage int) (out []T, current, total int) {
	if perPage <= 0 || len(slice) == 0 {
		return nil, 0, 0
	}

	total = (len(slice) + perPage - 1) / perPage
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}

	end := (page + 1) * perPage
	if end > len(slice) {
		end = len(slice)
	}
	return slice[page*perPage : end], page, total
}
