package models

// ListingRequest is what the category page asks for. Zero values mean "not provided".
type ListingRequest struct {
	CategorySlug string `json:"category_slug"`
	Sort         string `json:"sort"`
	Limit        int    `json:"limit"`
	Page         int    `json:"page"`
}

type Paging struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type Listing struct {
	Category *Category  `json:"category"`
	Games    []Game     `json:"games"`
	Paging   Paging     `json:"paging"`
	Sidebar  []Category `json:"sidebar"`
}

// Empty reports whether there is nothing to render.
func (l *Listing) Empty() bool {
	return l == nil || len(l.Games) == 0
}
