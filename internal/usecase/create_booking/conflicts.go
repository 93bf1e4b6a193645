package create_booking

import (
	"fmt"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// checkConflicts анти-дубли и пересечения состава против «занятых» броней
// семьи на ту же дату (DRAFT и PENDING, уже заблокированных FOR UPDATE)
//
// 1. Та же экскурсия (и та же точка сбора, когда обе указаны):
//   - одинаковые множества участников -> дубль
//   - у обеих броней состав не задан -> дубль по счетчикам и языку
//
// 2. Другая экскурсия, но составы пересекаются -> участники заняты
func checkConflicts(candidate *domain.BookingSale, siblings []*domain.BookingSale) error {
	newSet := domain.NewTravelerIDSet(candidate.TravelerIDs())

	for _, sibling := range siblings {
		siblingSet := domain.NewTravelerIDSet(sibling.TravelerIDs())

		if sibling.ExcursionID == candidate.ExcursionID {
			if pickupDiffers(candidate, sibling) {
				continue
			}
			if len(newSet) > 0 && len(siblingSet) > 0 && newSet.Equal(siblingSet) {
				return fmt.Errorf("%w: такая бронь уже есть: та же экскурсия, та же дата и тот же состав участников", ErrDuplicateBooking)
			}
			if len(newSet) == 0 && len(siblingSet) == 0 && sameParty(candidate, sibling) {
				return fmt.Errorf("%w: такая бронь уже есть: та же экскурсия, та же дата и тот же состав группы", ErrDuplicateBooking)
			}
			continue
		}

		if overlap := newSet.Intersect(siblingSet); len(overlap) > 0 {
			return &TravelerConflictError{TravelerIDs: overlap}
		}
	}

	return nil
}

// pickupDiffers точки сбора сравниваются только когда заданы у обеих броней
func pickupDiffers(a, b *domain.BookingSale) bool {
	if a.PickupPointID == nil || b.PickupPointID == nil {
		return false
	}
	return *a.PickupPointID != *b.PickupPointID
}

// sameParty сравнение по счетчикам, когда составы не заданы
// Язык экскурсии участвует: те же люди могли пойти другой языковой группой
func sameParty(a, b *domain.BookingSale) bool {
	return a.Adults == b.Adults &&
		a.Children == b.Children &&
		a.Infants == b.Infants &&
		a.ExcursionLanguage == b.ExcursionLanguage
}
