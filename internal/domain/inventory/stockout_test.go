package inventory_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/domain/inventory"
)

func TestDaysUntilStockout(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		totalSold int64
		window    int
		want      *int
	}{
		{name: "60 vendidos en 30 días, stock 7", quantity: 7, totalSold: 60, window: 30, want: intPtr(3)},
		{name: "venta fraccionaria no se trunca antes de tiempo", quantity: 5, totalSold: 45, window: 30, want: intPtr(3)},
		{name: "stock cero", quantity: 0, totalSold: 10, window: 30, want: intPtr(0)},
		{name: "venta mayor al stock", quantity: 1, totalSold: 300, window: 30, want: intPtr(0)},
		{name: "sin ventas", quantity: 4, totalSold: 0, window: 30, want: nil},
		{name: "ventas negativas (devoluciones)", quantity: 4, totalSold: -3, window: 30, want: nil},
		{name: "ventana inválida", quantity: 4, totalSold: 10, window: 0, want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.DaysUntilStockout(tc.quantity, tc.totalSold, tc.window)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestIsLowStock_Boundary(t *testing.T) {
	assert.True(t, inventory.IsLowStock(10, 10), "cantidad igual al umbral dispara alerta")
	assert.True(t, inventory.IsLowStock(0, 10))
	assert.False(t, inventory.IsLowStock(11, 10), "umbral + 1 no dispara alerta")
}

func TestSalesWindow_Contains(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	w := inventory.NewSalesWindow(now, 30)

	assert.Equal(t, 30, w.Days)
	assert.True(t, w.Contains(now.AddDate(0, 0, -30)), "el extremo inicial se incluye")
	assert.True(t, w.Contains(now), "el extremo final se incluye")
	assert.False(t, w.Contains(now.AddDate(0, 0, -30).Add(-time.Second)))
	assert.False(t, w.Contains(now.Add(time.Second)))
}

func TestSalesWindow_CruzaCambioDeHorario(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	// el 10 de marzo de 2024 New York adelanta el reloj una hora
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, loc)
	w := inventory.NewSalesWindow(now, 30)

	assert.Equal(t, 720*time.Hour, w.End.Sub(w.Start))
	assert.True(t, w.Contains(now.Add(-720*time.Hour)), "una venta justo 30 días antes se incluye")
	assert.False(t, w.Contains(now.Add(-720*time.Hour).Add(-time.Second)))
}

func TestNewSalesWindow_DefaultDays(t *testing.T) {
	w := inventory.NewSalesWindow(time.Now(), 0)
	assert.Equal(t, inventory.DefaultWindowDays, w.Days)
}

func intPtr(v int) *int { return &v }
