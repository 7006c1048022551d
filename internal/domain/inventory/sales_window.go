package inventory

import "time"

// DefaultWindowDays ventana de ventas recientes usada para la velocidad de venta.
const DefaultWindowDays = 30

// SalesWindow intervalo cerrado [Start, End] de ventas consideradas recientes.
type SalesWindow struct {
	Start time.Time
	End   time.Time
	Days  int
}

// NewSalesWindow construye la ventana de days días que termina en now.
// Los días son de 24h exactas, sin importar cambios de horario de la zona de now.
func NewSalesWindow(now time.Time, days int) SalesWindow {
	if days <= 0 {
		days = DefaultWindowDays
	}
	return SalesWindow{
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		End:   now,
		Days:  days,
	}
}

// Contains informa si t cae dentro de la ventana (ambos extremos incluidos).
func (w SalesWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
