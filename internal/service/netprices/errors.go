package netprices

import "errors"

var (
	// ErrNoNetPrice возвращается, когда подходящей нетто-цены нет
	// Это нормальная ситуация: бронь сохраняется без нетто-расчета
	ErrNoNetPrice = errors.New("netprices service: no applicable net price")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("netprices service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("netprices service: internal error")
)
