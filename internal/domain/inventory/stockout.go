package inventory

// IsLowStock stock en o por debajo del umbral del tipo de producto.
func IsLowStock(quantity, threshold int) bool {
	return quantity <= threshold
}

// DaysUntilStockout proyecta los días hasta agotar el stock al ritmo de venta reciente.
// VentaDiaria = totalSold / windowDays; Días = floor(quantity / VentaDiaria).
// Se calcula como floor(quantity * windowDays / totalSold) en enteros para no truncar antes de tiempo.
// Devuelve nil si la venta diaria no es positiva.
func DaysUntilStockout(quantity int, totalSold int64, windowDays int) *int {
	if totalSold <= 0 || windowDays <= 0 {
		return nil
	}
	num := int64(quantity) * int64(windowDays)
	days := num / totalSold
	if num%totalSold != 0 && num < 0 {
		days--
	}
	d := int(days)
	return &d
}
