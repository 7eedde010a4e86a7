package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPI(t *testing.T) {
	t.Setenv("ORDERS_TABLE", "orders")
	t.Setenv("PRODUCTS_TABLE", "products")
	t.Setenv("ORDER_EVENTS_TOPIC_ARN", "arn:aws:sns:us-east-1:123456789012:order-events")
	t.Setenv("RUN_LOCAL", "true")

	cfg, err := LoadAPI()
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.OrdersTable)
	assert.Equal(t, "products", cfg.ProductsTable)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:order-events", cfg.EventsTopicARN)
	assert.True(t, cfg.RunLocal)
}

func TestLoadAPI_MissingTable(t *testing.T) {
	t.Setenv("ORDERS_TABLE", "")
	t.Setenv("PRODUCTS_TABLE", "products")
	t.Setenv("ORDER_EVENTS_TOPIC_ARN", "arn:whatever")

	_, err := LoadAPI()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORDERS_TABLE")
}

func TestLoadConsumer(t *testing.T) {
	t.Setenv("ORDER_EVENTS_TABLE", "order-events")

	cfg, err := LoadConsumer()
	require.NoError(t, err)
	assert.Equal(t, "order-events", cfg.OrderEventsTable)
	assert.False(t, cfg.RunLocal)
}

func TestLoadConsumer_Missing(t *testing.T) {
	t.Setenv("ORDER_EVENTS_TABLE", "")

	_, err := LoadConsumer()
	require.Error(t, err)
}
