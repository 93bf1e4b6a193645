package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ErrMissingParam возвращается, когда обязательный параметр не передан
var ErrMissingParam = errors.New("missing parameter")

// PathInt64 достает числовой параметр из пути (mux.Vars)
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, ErrMissingParam
	}
	return strconv.ParseInt(raw, 10, 64)
}

// QueryInt64 достает опциональный числовой query-параметр
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// QueryInt достает числовой query-параметр с дефолтом
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// QueryString достает опциональный строковый query-параметр
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
