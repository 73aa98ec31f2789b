package db

import (
	"context"
	"fmt"

	"github.com/harithahub/storefront-backend/pkg/db/models"
	"github.com/harithahub/storefront-backend/pkg/logger"
)

// AutoMigrate creates or alters the schema for every model the service owns.
func (c *Client) AutoMigrate(ctx context.Context, logg *logger.Logger) error {
	err := c.conn.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Video{},
	)
	if err != nil {
		return fmt.Errorf("running auto migration: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "schema migration complete")
	}
	return nil
}
