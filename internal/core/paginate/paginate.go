// Package paginate is a pure, stateless windowing utility over in-memory
// ordered slices. Every operation clamps the page into [1, MaxPage]; nothing
// here can slice out of range.
package paginate

// MaxPage returns the highest valid page for n items at perPage per page.
// It is never below 1, even for empty data.
func MaxPage(n, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Window returns the slice of data visible on the given page. The page is
// clamped first, so any input yields a valid (possibly empty) window.
func Window[E any](data []E, perPage, page int) []E {
	if perPage <= 0 {
		return nil
	}
	page = Jump(page, MaxPage(len(data), perPage))

	start := (page - 1) * perPage
	if start >= len(data) {
		return nil
	}
	end := start + perPage
	if end > len(data) {
		end = len(data)
	}
	return data[start:end]
}

// Jump clamps any requested page into [1, maxPage].
func Jump(page, maxPage int) int {
	if page < 1 {
		page = 1
	}
	if maxPage < 1 {
		maxPage = 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

// Next advances one page, clamped to maxPage.
func Next(page, maxPage int) int {
	return Jump(page+1, maxPage)
}

// Prev goes back one page, clamped to 1.
func Prev(page, maxPage int) int {
	return Jump(page-1, maxPage)
}
