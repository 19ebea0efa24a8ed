package handler

import (
	"context"
	"strconv"

	"projecthub/internal/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 5
	maxPerPage     = 100
)

type pagination struct {
	Page    int
	PerPage int
	Offset  int
}

// paginate resolves the page/per_page query values against total. A page
// that is not a number becomes 1; one outside the available range becomes
// the last page. There is always at least one page.
func paginate(rawPage, rawPerPage string, total int64) pagination {
	perPage, err := strconv.Atoi(rawPerPage)
	if err != nil || perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	page, err := strconv.Atoi(rawPage)
	switch {
	case err != nil:
		page = 1
	case page < 1 || page > numPages:
		page = numPages
	}

	return pagination{Page: page, PerPage: perPage, Offset: (page - 1) * perPage}
}

// listPage counts, fetches and serialises one page of records.
func listPage[T any, R any](
	c *gin.Context,
	count func(ctx context.Context) (int64, error),
	list func(ctx context.Context, offset, limit int) ([]T, error),
	serialize func(T) R,
) (*response.Page, error) {
	ctx := c.Request.Context()
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	p := paginate(c.Query("page"), c.Query("per_page"), total)
	records, err := list(ctx, p.Offset, p.PerPage)
	if err != nil {
		return nil, err
	}

	items := make([]R, 0, len(records))
	for _, rec := range records {
		items = append(items, serialize(rec))
	}

	return &response.Page{
		CurrentPage: p.Page,
		Data:        items,
		PerPage:     p.PerPage,
		Total:       total,
	}, nil
}
