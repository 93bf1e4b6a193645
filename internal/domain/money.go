package domain

import "math"

// RoundMoney округляет денежную сумму до центов (half-up)
// Все денежные значения округляются в точке вычисления,
// «сырые» float в модель не попадают
func RoundMoney(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
