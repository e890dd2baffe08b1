package handler

import (
	"errors"
	"net/http"
	"strconv"

	"arcade/internal/models"
	"arcade/internal/pkg/paging"
	"arcade/internal/pkg/thumbnail"
	"arcade/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupCategory struct {
	container    *do.Injector
	siteURL      string
	themeBaseURL string
}

func listingRequest(c echo.Context) models.ListingRequest {
	// an unparsable limit counts as not provided
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return models.ListingRequest{
		CategorySlug: c.Param("slug"),
		Sort:         c.QueryParam("sort"),
		Limit:        limit,
		Page:         paging.ParsePage(c.QueryParam(paging.QueryParam)),
	}
}

// Page renders the carousel fragment. An unknown category or an empty page renders nothing.
func (gr *groupCategory) Page(c echo.Context) error {
	serviceListing, err := do.Invoke[*services.ServiceListing](gr.container)
	if err != nil {
		return err
	}

	thumbs, err := do.Invoke[*thumbnail.Builder](gr.container)
	if err != nil {
		return err
	}

	listing, err := serviceListing.GetListing(c.Request().Context(), listingRequest(c))
	if errors.Is(err, services.ErrCategoryNotFound) {
		return c.HTML(http.StatusOK, "")
	}
	if err != nil {
		return err
	}
	if listing.Empty() {
		return c.HTML(http.StatusOK, "")
	}

	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return err
	}
	themeBaseURL := serviceConfig.ThemeBaseURL(c.Request().Context(), gr.themeBaseURL)

	page := newCategoryPage(listing, thumbs, c.Request().URL, gr.siteURL, themeBaseURL)
	return c.Render(http.StatusOK, templateCategory, page)
}

func (gr *groupCategory) Games(c echo.Context) error {
	serviceListing, err := do.Invoke[*services.ServiceListing](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	listing, err := serviceListing.GetListing(c.Request().Context(), listingRequest(c))
	if errors.Is(err, services.ErrCategoryNotFound) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, listing, nil)
}

func (gr *groupCategory) Categories(c echo.Context) error {
	serviceCategory, err := do.Invoke[*services.ServiceCategory](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	categories, err := serviceCategory.GetCategoriesByTaxonomy(c.Request().Context(), models.TaxonomyGame)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, categories, nil)
}
