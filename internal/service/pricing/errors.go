package pricing

import "errors"

var (
	// ErrPricingUnavailable возвращается, когда ни один ярус не дал цену
	// Отличается от нулевой цены: ноль - валидный результат котировки
	ErrPricingUnavailable = errors.New("pricing service: pricing unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing service: invalid input")
)
