package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронь не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrNotDraft возвращается при попытке изменить или удалить не-черновик
	ErrNotDraft = errors.New("booking is not a draft")

	// ErrCannotCancel возвращается при попытке аннулировать черновик
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotSend возвращается при попытке отправить не-черновик
	ErrCannotSend = errors.New("booking cannot be sent")

	// ErrNoOrderEmail возвращается, когда у компании не настроен email для заказов
	ErrNoOrderEmail = errors.New("company has no order email configured")

	// ErrSendFailed возвращается, когда письмо партнеру не ушло
	// Статус брони при этом не меняется
	ErrSendFailed = errors.New("failed to send order email")

	// ErrInvalidStatus возвращается при недопустимом переходе статуса
	ErrInvalidStatus = errors.New("invalid booking status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
