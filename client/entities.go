package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// EntityService provides entity lookup, listing, and download operations.
type EntityService struct {
	c *Client
}

// ListOptions are the filter/sort/page parameters of a list query. Zero
// values are omitted and fall back to server defaults.
type ListOptions struct {
	IDs              []string
	Countries        []string
	Subregions       []string
	Regions          []string
	InstitutionTypes []string

	MinNOutputs     int
	MaxNOutputs     int
	MinNOutputsOpen int
	MaxNOutputsOpen int
	MinPOutputsOpen float64
	MaxPOutputsOpen float64

	Page     int
	Limit    int
	OrderBy  string
	OrderDir string
}

func (o *ListOptions) values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}

	setList := func(key string, vs []string) {
		if len(vs) > 0 {
			params.Set(key, strings.Join(vs, ","))
		}
	}
	setInt := func(key string, v int) {
		if v > 0 {
			params.Set(key, strconv.Itoa(v))
		}
	}

	setList("ids", o.IDs)
	setList("countries", o.Countries)
	setList("subregions", o.Subregions)
	setList("regions", o.Regions)
	setList("institutionTypes", o.InstitutionTypes)

	setInt("minNOutputs", o.MinNOutputs)
	setInt("maxNOutputs", o.MaxNOutputs)
	setInt("minNOutputsOpen", o.MinNOutputsOpen)
	setInt("maxNOutputsOpen", o.MaxNOutputsOpen)
	if o.MinPOutputsOpen > 0 {
		params.Set("minPOutputsOpen", strconv.FormatFloat(o.MinPOutputsOpen, 'f', -1, 64))
	}
	if o.MaxPOutputsOpen > 0 {
		params.Set("maxPOutputsOpen", strconv.FormatFloat(o.MaxPOutputsOpen, 'f', -1, 64))
	}

	setInt("page", o.Page)
	setInt("limit", o.Limit)
	if o.OrderBy != "" {
		params.Set("orderBy", o.OrderBy)
	}
	if o.OrderDir != "" {
		params.Set("orderDir", o.OrderDir)
	}

	return params
}

// Get fetches one entity by type ("country" or "institution") and id.
func (s *EntityService) Get(ctx context.Context, entityType, id string) (*Entity, error) {
	var e Entity
	path := fmt.Sprintf("/api/v1/%s/%s", url.PathEscape(entityType), url.PathEscape(id))
	if err := s.c.get(ctx, path, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List runs a filtered, sorted, paginated query over one collection
// ("countries" or "institutions").
func (s *EntityService) List(ctx context.Context, collection string, opts *ListOptions) (*QueryResult, error) {
	var result QueryResult
	path := "/api/v1/" + url.PathEscape(collection)
	if err := s.c.get(ctx, path, opts.values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download fetches the zip archive for one entity.
func (s *EntityService) Download(ctx context.Context, entityType, id string) ([]byte, error) {
	path := fmt.Sprintf("/api/v1/download/%s/%s", url.PathEscape(entityType), url.PathEscape(id))
	return s.c.getRaw(ctx, path)
}
