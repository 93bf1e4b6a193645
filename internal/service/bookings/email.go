package bookings

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// excursionTitles двуязычное название экскурсии: запрошенный язык + русский
// Каталог недоступен - остаемся на снэпшоте из брони
func (s *Service) excursionTitles(ctx context.Context, b *domain.BookingSale) (string, string) {
	title := b.ExcursionTitle
	if t, err := s.catalog.ExcursionTitle(ctx, b.ExcursionID, b.ExcursionLanguage); err == nil && t != "" {
		title = t
	}

	titleRu := ""
	if b.ExcursionLanguage != "ru" {
		if t, err := s.catalog.ExcursionTitle(ctx, b.ExcursionID, "ru"); err == nil && t != "" && t != title {
			titleRu = t
		}
	}
	return title, titleRu
}

// buildOrderEmail письмо-заказ партнеру при отправке брони
func (s *Service) buildOrderEmail(ctx context.Context, b *domain.BookingSale, travelers []*domain.Traveler, batchCode string) (subject, htmlBody, textBody string) {
	title, titleRu := s.excursionTitles(ctx, b)
	fullTitle := title
	if titleRu != "" {
		fullTitle = fmt.Sprintf("%s / %s", title, titleRu)
	}

	subject = fmt.Sprintf("Заказ %s: %s, %s", batchCode, fullTitle, b.Date.Format(domain.DateFormat))

	var text strings.Builder
	fmt.Fprintf(&text, "Заказ %s (бронь %s)\n\n", batchCode, b.BookingCode)
	fmt.Fprintf(&text, "Экскурсия: %s\n", fullTitle)
	fmt.Fprintf(&text, "Дата: %s\n", b.Date.Format(domain.DateFormat))
	fmt.Fprintf(&text, "Язык: %s\n", b.ExcursionLanguage)
	fmt.Fprintf(&text, "Состав: взрослых %d, детей %d, младенцев %d\n", b.Adults, b.Children, b.Infants)
	if b.HotelName != "" {
		fmt.Fprintf(&text, "Отель: %s", b.HotelName)
		if b.RegionName != "" {
			fmt.Fprintf(&text, " (%s)", b.RegionName)
		}
		text.WriteString("\n")
	}
	if b.RoomNumber != "" {
		fmt.Fprintf(&text, "Номер комнаты: %s\n", b.RoomNumber)
	}
	if b.PickupPointName != "" {
		fmt.Fprintf(&text, "Точка сбора: %s", b.PickupPointName)
		if !b.PickupTime.IsZero() {
			fmt.Fprintf(&text, " в %s", b.PickupTime)
		}
		text.WriteString("\n")
	}
	if len(travelers) > 0 {
		text.WriteString("\nУчастники:\n")
		for i, t := range travelers {
			fmt.Fprintf(&text, "%d. %s\n", i+1, travelerLine(t))
		}
	}
	fmt.Fprintf(&text, "\nИтого: %.2f %s\n", b.GrossTotal, domain.DefaultCurrency)

	textBody = text.String()
	htmlBody = textToHTML(textBody)
	return subject, htmlBody, textBody
}

// buildCancellationEmail письмо об аннуляции ранее отправленной брони
func (s *Service) buildCancellationEmail(ctx context.Context, b *domain.BookingSale, reason string) (subject, htmlBody, textBody string) {
	title, titleRu := s.excursionTitles(ctx, b)
	fullTitle := title
	if titleRu != "" {
		fullTitle = fmt.Sprintf("%s / %s", title, titleRu)
	}

	subject = fmt.Sprintf("АННУЛЯЦИЯ брони %s: %s, %s", b.BookingCode, fullTitle, b.Date.Format(domain.DateFormat))

	var text strings.Builder
	fmt.Fprintf(&text, "Аннулирована бронь %s", b.BookingCode)
	if b.BatchCode != "" {
		fmt.Fprintf(&text, " (заказ %s)", b.BatchCode)
	}
	text.WriteString("\n\n")
	fmt.Fprintf(&text, "Экскурсия: %s\n", fullTitle)
	fmt.Fprintf(&text, "Дата: %s\n", b.Date.Format(domain.DateFormat))
	fmt.Fprintf(&text, "Состав: взрослых %d, детей %d, младенцев %d\n", b.Adults, b.Children, b.Infants)
	if reason != "" {
		fmt.Fprintf(&text, "Причина: %s\n", reason)
	}

	textBody = text.String()
	htmlBody = textToHTML(textBody)
	return subject, htmlBody, textBody
}

func travelerLine(t *domain.Traveler) string {
	parts := []string{strings.TrimSpace(t.LastName + " " + t.FirstName)}
	if t.DOB != nil {
		parts = append(parts, t.DOB.Format(domain.DateFormat))
	}
	if t.Passport != "" {
		parts = append(parts, t.Passport)
	}
	return strings.Join(parts, ", ")
}

func textToHTML(text string) string {
	lines := strings.Split(html.EscapeString(text), "\n")
	return "<p>" + strings.Join(lines, "<br>") + "</p>"
}
