// Package paging turns a total count, a page and a limit into page metadata and navigation links.
package paging

import (
	"math"
	"net/url"
	"strconv"

	"arcade/internal/models"
)

const (
	QueryParam    = "page"
	DefaultWindow = 5
)

type Link struct {
	Label    string
	Page     int
	URL      string
	Active   bool
	Disabled bool
}

// NormalizePage maps an absent or non-positive page to 1.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ParsePage reads a raw query value; anything unparsable is page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return NormalizePage(page)
}

// Fits reports whether the page's OFFSET and LIMIT both fit in an int32.
func Fits(page, limit int) bool {
	if limit <= 0 || limit > math.MaxInt32 {
		return false
	}
	return int64(NormalizePage(page)-1) <= math.MaxInt32/int64(limit)
}

func Offset(page, limit int) int {
	return (NormalizePage(page) - 1) * limit
}

func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func New(total int64, page, limit int) models.Paging {
	return models.Paging{
		Total:      total,
		Page:       NormalizePage(page),
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// Links builds first/prev, a window of numbered pages around the current one, and next/last.
// Every other query parameter of base is kept. A single page yields no links.
func Links(base *url.URL, p models.Paging, window int) []Link {
	if p.TotalPages <= 1 {
		return nil
	}
	if window <= 0 {
		window = DefaultWindow
	}

	start := p.Page - window/2
	if start > p.TotalPages-window+1 {
		start = p.TotalPages - window + 1
	}
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > p.TotalPages {
		end = p.TotalPages
	}

	links := make([]Link, 0, end-start+5)
	links = append(links,
		link(base, "«", 1, false, p.Page <= 1),
		link(base, "‹", p.Page-1, false, p.Page <= 1),
	)
	for i := start; i <= end; i++ {
		links = append(links, link(base, strconv.Itoa(i), i, i == p.Page, false))
	}
	links = append(links,
		link(base, "›", p.Page+1, false, p.Page >= p.TotalPages),
		link(base, "»", p.TotalPages, false, p.Page >= p.TotalPages),
	)
	return links
}

func link(base *url.URL, label string, page int, active, disabled bool) Link {
	l := Link{Label: label, Page: page, Active: active, Disabled: disabled}
	if disabled {
		return l
	}
	l.URL = PageURL(base, page)
	return l
}

func PageURL(base *url.URL, page int) string {
	q := base.Query()
	q.Set(QueryParam, strconv.Itoa(page))
	u := url.URL{Path: base.Path, RawQuery: q.Encode()}
	return u.String()
}
