package create_booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrCompanyInactive возвращается, когда компания отключена
	ErrCompanyInactive = errors.New("create_booking: company is inactive")

	// ErrFamilyNotFound возвращается, когда семья не найдена
	ErrFamilyNotFound = errors.New("create_booking: family not found")

	// ErrDuplicateBooking возвращается, когда такая бронь у семьи уже есть
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrPricingUnavailable возвращается, когда цену не удалось определить
	// ни вручную, ни по водопаду котировок
	ErrPricingUnavailable = errors.New("create_booking: pricing unavailable")

	// ErrInvalidDate возвращается при некорректной дате брони
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// TravelerConflictError участники уже заняты в другой экскурсии в этот день
// Несет отсортированные id конфликтующих туристов для тела ответа
type TravelerConflictError struct {
	TravelerIDs []int64
}

func (e *TravelerConflictError) Error() string {
	ids := make([]string, 0, len(e.TravelerIDs))
	for _, id := range e.TravelerIDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return fmt.Sprintf("create_booking: travelers already busy on this date: %s", strings.Join(ids, ", "))
}
