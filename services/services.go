package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"vitrine/apiclient"
)

// API is the subset of the backend client the services depend on.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Result is the envelope every service call returns. Services never return
// Go errors to their callers; failures are reported through Error.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	// NotFound is set when the backend answered 404.
	NotFound bool `json:"-"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Error: messageOf(err), NotFound: apiclient.IsNotFound(err)}
}

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func getList[T any](ctx context.Context, api API, path string) Result[[]T] {
	var raw json.RawMessage
	if err := api.Get(ctx, path, &raw); err != nil {
		return fail[[]T](err)
	}
	items, err := apiclient.DecodeList[T](raw)
	if err != nil {
		return fail[[]T](err)
	}
	return ok(items)
}

func getOne[T any](ctx context.Context, api API, path string) Result[T] {
	var out T
	if err := api.Get(ctx, path, &out); err != nil {
		return fail[T](err)
	}
	return ok(out)
}

func send[T any](ctx context.Context, api API, method, path string, body any) Result[T] {
	var out T
	var err error
	switch method {
	case "POST":
		err = api.Post(ctx, path, body, &out)
	case "PUT":
		err = api.Put(ctx, path, body, &out)
	default:
		err = fmt.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return fail[T](err)
	}
	return ok(out)
}

func remove(ctx context.Context, api API, path string) Result[struct{}] {
	if err := api.Delete(ctx, path, nil); err != nil {
		return fail[struct{}](err)
	}
	return ok(struct{}{})
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

func itemPath(base string, id int) string {
	return base + strconv.Itoa(id) + "/"
}
