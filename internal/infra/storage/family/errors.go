package family

import "errors"

var (
	// ErrFamilyNotFound возвращается, когда семейная бронь не найдена
	ErrFamilyNotFound = errors.New("family.repository: family booking not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("family.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("family.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("family.repository: failed to scan row")
)
