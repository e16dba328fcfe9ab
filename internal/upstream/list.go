package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Page is the normalized list shape. Plain-array responses become a Page
// with Count = len(Results) and no cursors.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

type rawPage[T any] struct {
	Count    *int    `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func DecodeList[T any](body []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Page[T]{Results: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decode upstream list: %w", err)
		}
		return Page[T]{Count: len(items), Results: items}, nil
	}

	var rp rawPage[T]
	if err := json.Unmarshal(trimmed, &rp); err != nil {
		return Page[T]{}, fmt.Errorf("decode upstream page: %w", err)
	}
	p := Page[T]{Results: rp.Results}
	if p.Results == nil {
		p.Results = []T{}
	}
	if rp.Count != nil {
		p.Count = *rp.Count
	} else {
		p.Count = len(p.Results)
	}
	if rp.Next != nil {
		p.Next = *rp.Next
	}
	if rp.Previous != nil {
		p.Previous = *rp.Previous
	}
	return p, nil
}

func DecodeJSON[T any](body []byte) (T, error) {
	var v T
	if len(bytes.TrimSpace(body)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode upstream object: %w", err)
	}
	return v, nil
}

func GetList[T any](ctx context.Context, api API, path string, query url.Values, notFoundAsEmpty bool) (Page[T], error) {
	body, err := api.Do(ctx, Request{
		Method:          http.MethodGet,
		Path:            path,
		Query:           query,
		NotFoundAsEmpty: notFoundAsEmpty,
	})
	if err != nil {
		return Page[T]{}, err
	}
	return DecodeList[T](body)
}

func GetJSON[T any](ctx context.Context, api API, path string, query url.Values) (T, error) {
	body, err := api.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeJSON[T](body)
}

func SendJSON[T any](ctx context.Context, api API, method, path string, payload any) (T, error) {
	body, err := api.Do(ctx, Request{Method: method, Path: path, Body: payload})
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeJSON[T](body)
}
