package families

import "errors"

var (
	// ErrFamilyNotFound возвращается, когда семья не найдена
	ErrFamilyNotFound = errors.New("family not found")

	// ErrTravelerExists возвращается, когда такой турист уже есть в семье
	// Уникальность: (семья, фамилия, имя, дата рождения)
	ErrTravelerExists = errors.New("traveler already exists in family")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
