package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

func TestSeedDemo_GeneraAlerta(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedDemo(ctx, store, logger.Nop())

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	uc := inventory.NewLowStockAlertUseCase(store, store, logger.Nop(), inventory.AlertConfig{WindowDays: 30})
	res, err := uc.Compute(ctx, ids[0])
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalAlerts)

	a := res.Alerts[0]
	assert.Equal(t, "DEMO-001", a.SKU)
	require.NotNil(t, a.DaysUntilStockout)
	assert.Equal(t, 10, *a.DaysUntilStockout)
	require.NotNil(t, a.Supplier)
	assert.Equal(t, "Ferretería Central", a.Supplier.Name)
}
