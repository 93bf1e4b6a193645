package costasolinfo

import "github.com/m4rkov/CSI-SalesService/pkg/types"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Region регион из каталога
type Region struct {
	ID   *int64
	Slug string
}

// Hotel отель из каталога
type Hotel struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	RegionSlug string `json:"region,omitempty"`
}

// ExcursionSummary экскурсия в списке каталога
type ExcursionSummary struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	Direction        string   `json:"direction,omitempty"`
	Languages        []string `json:"languages,omitempty"`
	Image            string   `json:"image,omitempty"`
}

// PickupPoint точка сбора для пары (экскурсия, отель)
type PickupPoint struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Time       types.TimeString `json:"time,omitempty"`
	Lat        *float64         `json:"lat,omitempty"`
	Lng        *float64         `json:"lng,omitempty"`
	Address    string           `json:"address,omitempty"`
	PriceAdult *float64         `json:"price_adult,omitempty"`
	PriceChild *float64         `json:"price_child,omitempty"`
	Currency   string           `json:"currency,omitempty"`
}

// PriceRow региональная цена экскурсии (взрослый/детский, валюта)
type PriceRow struct {
	Adult    float64
	Child    float64
	Currency string
}

// PricingQuote котировка из котировщика каталога
type PricingQuote struct {
	Gross      float64
	Currency   string
	Net        *float64
	Commission *float64
	PerAdult   *float64
	PerChild   *float64
}
