package client

import (
	"context"
	"net/url"
	"strconv"
)

// SearchService provides text search operations.
type SearchService struct {
	c *Client
}

// SearchOptions control search pagination and scope.
type SearchOptions struct {
	EntityType string
	Page       int
	Limit      int
}

// Search runs a ranked text search. All-uppercase text of two or more
// characters is treated preferentially as an acronym by the server.
func (s *SearchService) Search(ctx context.Context, text string, opts *SearchOptions) (*QueryResult, error) {
	params := url.Values{}
	if opts != nil {
		if opts.EntityType != "" {
			params.Set("entityType", opts.EntityType)
		}
		if opts.Page > 0 {
			params.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
	}

	var result QueryResult
	if err := s.c.get(ctx, "/api/v1/search/"+url.PathEscape(text), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
