package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
)

// State is the observable status of a Resource after its last call.
type State[T any] struct {
	Data    []T
	Error   string
	Loading bool
}

// Resource wraps the five CRUD calls of one REST collection and keeps the fetched records.
// Calls never return errors: a failed call returns the zero value and leaves the message in
// State().Error.
type Resource[T any] struct {
	http *resty.Client
	name string
	path string
	id   func(*T) string

	mu    sync.Mutex
	state State[T]
}

// NewResource binds a collection path such as "/tickets". id extracts the primary key used
// to upsert and drop records from the local slice.
func NewResource[T any](rc *resty.Client, name, path string, id func(*T) string) *Resource[T] {
	return &Resource[T]{http: rc, name: name, path: strings.TrimRight(path, "/"), id: id}
}

// State returns a copy of the current state.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.state
	if r.state.Data != nil {
		out.Data = append([]T(nil), r.state.Data...)
	}
	return out
}

// FetchAll loads the whole collection and replaces the local slice.
func (r *Resource[T]) FetchAll(ctx context.Context) []T {
	r.begin()
	var items []T
	if msg := r.call(ctx, resty.MethodGet, r.path, nil, &items, "fetch"); msg != "" {
		r.fail(msg)
		return nil
	}
	r.succeed(func(s *State[T]) { s.Data = append([]T(nil), items...) })
	return items
}

// FetchByID loads one record and upserts it locally.
func (r *Resource[T]) FetchByID(ctx context.Context, id string) *T {
	r.begin()
	var item T
	if msg := r.call(ctx, resty.MethodGet, r.itemPath(id), nil, &item, "fetch"); msg != "" {
		r.fail(msg)
		return nil
	}
	r.succeed(func(s *State[T]) { r.upsert(s, item) })
	return &item
}

// Create posts body and appends the created record.
func (r *Resource[T]) Create(ctx context.Context, body any) *T {
	r.begin()
	var item T
	if msg := r.call(ctx, resty.MethodPost, r.path, body, &item, "create"); msg != "" {
		r.fail(msg)
		return nil
	}
	r.succeed(func(s *State[T]) { s.Data = append(s.Data, item) })
	return &item
}

// Update patches the record and upserts the result.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) *T {
	r.begin()
	var item T
	if msg := r.call(ctx, resty.MethodPatch, r.itemPath(id), body, &item, "update"); msg != "" {
		r.fail(msg)
		return nil
	}
	r.succeed(func(s *State[T]) { r.upsert(s, item) })
	return &item
}

// Remove deletes the record and drops it locally. It reports whether the call succeeded.
func (r *Resource[T]) Remove(ctx context.Context, id string) bool {
	r.begin()
	if msg := r.call(ctx, resty.MethodDelete, r.itemPath(id), nil, nil, "delete"); msg != "" {
		r.fail(msg)
		return false
	}
	r.succeed(func(s *State[T]) {
		kept := make([]T, 0, len(s.Data))
		for _, item := range s.Data {
			if r.id(&item) != id {
				kept = append(kept, item)
			}
		}
		s.Data = kept
	})
	return true
}

func (r *Resource[T]) begin() {
	r.mu.Lock()
	r.state.Error = ""
	r.state.Loading = true
	r.mu.Unlock()
}

func (r *Resource[T]) fail(msg string) {
	r.mu.Lock()
	r.state.Error = msg
	r.state.Loading = false
	r.mu.Unlock()
}

func (r *Resource[T]) succeed(update func(*State[T])) {
	r.mu.Lock()
	update(&r.state)
	r.state.Loading = false
	r.mu.Unlock()
}

// upsert must be called with mu held.
func (r *Resource[T]) upsert(s *State[T], item T) {
	key := r.id(&item)
	for i := range s.Data {
		if r.id(&s.Data[i]) == key {
			s.Data[i] = item
			return
		}
	}
	s.Data = append(s.Data, item)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// call issues the request and returns "" on success or the error text otherwise.
func (r *Resource[T]) call(ctx context.Context, method, path string, body, result any, verb string) string {
	fallback := fmt.Sprintf("%s %s failed", verb, r.name)
	req := r.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fallback
	}
	if !resp.IsSuccess() {
		return errorMessage(resp.Body(), fallback)
	}
	return ""
}

// errorMessage reads "message" or "error.message" from an error body.
func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if payload.Message != "" {
		return payload.Message
	}
	var nested struct {
		Message string `json:"message"`
	}
	if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
		return nested.Message
	}
	var plain string
	if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &plain) == nil && plain != "" {
		return plain
	}
	return fallback
}
