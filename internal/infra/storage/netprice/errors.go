package netprice

import "errors"

var (
	// ErrNetPriceNotFound возвращается, когда запись нетто-цены не найдена
	ErrNetPriceNotFound = errors.New("netprice.repository: net price not found")

	// ErrDuplicate возвращается при нарушении уникальности (company, excursion, region)
	ErrDuplicate = errors.New("netprice.repository: duplicate net price record")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("netprice.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("netprice.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("netprice.repository: failed to scan row")
)
