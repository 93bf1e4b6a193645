package traveler

import "errors"

var (
	// ErrTravelerNotFound возвращается, когда турист не найден
	ErrTravelerNotFound = errors.New("traveler.repository: traveler not found")

	// ErrTravelerExists возвращается при нарушении уникальности
	// (семья, фамилия, имя, дата рождения)
	ErrTravelerExists = errors.New("traveler.repository: traveler already exists in family")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("traveler.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("traveler.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("traveler.repository: failed to scan row")
)
