package costasolinfo

import "errors"

var (
	// ErrNotFound возвращается на 404 каталога (не ошибка: записи просто нет)
	ErrNotFound = errors.New("costasolinfo client: not found")

	// ErrUnavailable возвращается, когда каталог недоступен и свежего
	// или протухшего кэша нет. Читающие ручки трактуют как «пустой результат»
	ErrUnavailable = errors.New("costasolinfo client: catalog unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("costasolinfo client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("costasolinfo client: internal error")
)
