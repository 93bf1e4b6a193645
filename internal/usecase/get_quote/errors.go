package get_quote

import "errors"

var (
	// ErrPricingUnavailable возвращается, когда ни один источник не дал цену
	ErrPricingUnavailable = errors.New("get_quote: pricing unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
