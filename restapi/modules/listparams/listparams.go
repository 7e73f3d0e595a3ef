// Package listparams translates list-endpoint query strings into query
// engine options. Both collection endpoints share the same conventions:
// status, search, sort, order, page and limit.
package listparams

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/volunteerhub/backend/internal/apperrors"
	"github.com/volunteerhub/backend/internal/query"
)

// Parse reads the shared list parameters off the request. Pagination is
// only applied when the caller sends page or limit.
func Parse(c *fiber.Ctx) (query.Options, error) {
	opts := query.Options{
		Search: strings.TrimSpace(c.Query("search")),
	}

	if status := c.Query("status"); status != "" {
		opts.Equals = map[string]string{"status": status}
	}

	if field := c.Query("sort"); field != "" {
		order := strings.ToLower(c.Query("order", "asc"))
		if order != "asc" && order != "desc" {
			return opts, apperrors.BadRequest("order must be asc or desc")
		}
		opts.Sort = &query.Sort{Field: field, Descending: order == "desc"}
	}

	pageRaw, limitRaw := c.Query("page"), c.Query("limit")
	if pageRaw != "" || limitRaw != "" {
		pagination := &query.Pagination{Page: 1, Limit: query.DefaultLimit}
		if pageRaw != "" {
			page, err := strconv.Atoi(pageRaw)
			if err != nil || page < 1 {
				return opts, apperrors.BadRequest("page must be a positive integer")
			}
			pagination.Page = page
		}
		if limitRaw != "" {
			limit, err := strconv.Atoi(limitRaw)
			if err != nil || limit < 1 {
				return opts, apperrors.BadRequest("limit must be a positive integer")
			}
			pagination.Limit = limit
		}
		opts.Pagination = pagination
	}

	return opts, nil
}

// CSV splits a comma-separated query parameter into trimmed values
func CSV(c *fiber.Ctx, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
