package handler

import (
	"net/url"
	"strings"

	"arcade/internal/models"
	"arcade/internal/pkg/paging"
	"arcade/internal/pkg/thumbnail"
)

const (
	gameThumbWidth      = 300
	gameThumbHeight     = 200
	categoryThumbWidth  = 120
	categoryThumbHeight = 120
)

type gameCard struct {
	Name    string
	Excerpt string
	Thumb   string
	PlayURL string
	IsHot   bool
	IsNew   bool
}

type categoryCard struct {
	Name        string
	Description string
	Thumb       string
	URL         string
	Active      bool
}

type categoryPage struct {
	Category     *models.Category
	Games        []gameCard
	Categories   []categoryCard
	Paging       models.Paging
	Links        []paging.Link
	ThemeBaseURL string
}

func newCategoryPage(listing *models.Listing, thumbs *thumbnail.Builder, base *url.URL, siteURL, themeBaseURL string) categoryPage {
	siteURL = strings.TrimRight(siteURL, "/")
	page := categoryPage{
		Category:     listing.Category,
		Paging:       listing.Paging,
		Links:        paging.Links(base, listing.Paging, paging.DefaultWindow),
		ThemeBaseURL: strings.TrimRight(themeBaseURL, "/"),
		Games:        make([]gameCard, 0, len(listing.Games)),
		Categories:   make([]categoryCard, 0, len(listing.Sidebar)),
	}

	for _, g := range listing.Games {
		page.Games = append(page.Games, gameCard{
			Name:    g.Name,
			Excerpt: g.Excerpt,
			Thumb:   thumbs.URL(g.Image, gameThumbWidth, gameThumbHeight, thumbnail.FormatWebP),
			PlayURL: siteURL + "/game/" + url.PathEscape(g.Slug),
			IsHot:   g.IsHot,
			IsNew:   g.IsNew,
		})
	}

	for _, c := range listing.Sidebar {
		page.Categories = append(page.Categories, categoryCard{
			Name:        c.Name,
			Description: c.Description,
			Thumb:       thumbs.URL(c.Meta.Image, categoryThumbWidth, categoryThumbHeight, thumbnail.FormatWebP),
			URL:         siteURL + "/category/" + url.PathEscape(c.Slug),
			Active:      listing.Category != nil && c.ID == listing.Category.ID,
		})
	}

	return page
}
