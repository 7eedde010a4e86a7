package config

import (
	"fmt"
	"os"
)

// Config holds the resource names the pipeline depends on. Resolved once at
// process start, immutable afterwards.
type Config struct {
	OrdersTable      string
	ProductsTable    string
	OrderEventsTable string
	EventsTopicARN   string
	RunLocal         bool
}

// LoadAPI reads the configuration the order API needs.
func LoadAPI() (Config, error) {
	cfg := Config{
		OrdersTable:    os.Getenv("ORDERS_TABLE"),
		ProductsTable:  os.Getenv("PRODUCTS_TABLE"),
		EventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
		RunLocal:       os.Getenv("RUN_LOCAL") == "true",
	}
	if cfg.OrdersTable == "" {
		return cfg, fmt.Errorf("ORDERS_TABLE is required")
	}
	if cfg.ProductsTable == "" {
		return cfg, fmt.Errorf("PRODUCTS_TABLE is required")
	}
	if cfg.EventsTopicARN == "" {
		return cfg, fmt.Errorf("ORDER_EVENTS_TOPIC_ARN is required")
	}
	return cfg, nil
}

// LoadConsumer reads the configuration the event log consumer needs.
func LoadConsumer() (Config, error) {
	cfg := Config{
		OrderEventsTable: os.Getenv("ORDER_EVENTS_TABLE"),
		RunLocal:         os.Getenv("RUN_LOCAL") == "true",
	}
	if cfg.OrderEventsTable == "" {
		return cfg, fmt.Errorf("ORDER_EVENTS_TABLE is required")
	}
	return cfg, nil
}
