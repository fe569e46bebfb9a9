package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/platform/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(
		config.WithoutSystemEnv(),
		config.WithEnvFile(""),
		config.WithEnvMap(map[string]string{
			"BACKEND_BASE_URL": "https://backend.example.com",
			"SHOP_ID":          "shop-1",
		}),
	)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, "/admin", cfg.Server.BasePath)
	require.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 30*time.Second, cfg.Polling.InventoryInterval)
	require.Equal(t, 3, cfg.Shop.LowStockThreshold)
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(
		config.WithoutSystemEnv(),
		config.WithEnvFile(""),
		config.WithEnvMap(map[string]string{
			"BACKEND_BASE_URL":        "https://backend.example.com",
			"SHOP_ID":                 "shop-9",
			"ADMIN_HTTP_ADDR":         ":9090",
			"POLL_INVENTORY_INTERVAL": "5s",
		}),
	)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Address)
	require.Equal(t, "shop-9", cfg.Shop.ID)
	require.Equal(t, 5*time.Second, cfg.Polling.InventoryInterval)
}

func TestLoadReportsMissingFields(t *testing.T) {
	t.Parallel()

	_, err := config.Load(
		config.WithoutSystemEnv(),
		config.WithEnvFile(""),
	)
	require.Error(t, err)

	var validationErr *config.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, []string{"BACKEND_BASE_URL", "SHOP_ID"}, validationErr.Fields())
}
