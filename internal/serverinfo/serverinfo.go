// Package serverinfo reads the index the solve server publishes at its root path.
package serverinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
)

// Index is the body of GET / on the solve server.
// Endpoints maps a path to a description such as "POST - upload an image".
type Index struct {
	Message   string            `json:"message" yaml:"message"`
	Endpoints map[string]string `json:"endpoints" yaml:"endpoints"`
}

// Paths returns the advertised paths in a stable order
func (index Index) Paths() []string {
	names := make([]string, 0, len(index.Endpoints))
	for name := range index.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Supports reports whether the server advertises path
func (index Index) Supports(path string) bool {
	_, ok := index.Endpoints[path]
	return ok
}

type Reader struct {
	baseURL string
	timeout time.Duration
}

func NewReader(baseURL string, timeout time.Duration) *Reader {
	return &Reader{
		baseURL: baseURL,
		timeout: timeout,
	}
}

func (r *Reader) Fetch(ctx context.Context) (Index, error) {
	var index Index

	client := resty.New().
		SetBaseURL(r.baseURL).
		SetTimeout(r.timeout)
	res, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get("/")
	if err != nil {
		return index, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return index, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if err := json.Unmarshal(res.Body(), &index); err != nil {
		return index, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return index, nil
}
