package client

import (
	"context"
	"net/http"
	"strconv"
)

// Resource is the CRUD surface of one entity collection.
type Resource[T any] struct {
	c    *Client
	path string
}

// List returns every item; an empty collection is an empty, non-nil slice.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var item T
	if err := r.c.do(ctx, http.MethodPost, r.path, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Update(ctx context.Context, id uint, payload any) (*T, error) {
	var item T
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id uint) string {
	return r.path + "/" + strconv.FormatUint(uint64(id), 10)
}
