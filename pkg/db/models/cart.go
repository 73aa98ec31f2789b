package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harithahub/storefront-backend/pkg/types"
)

// Cart is the single working cart each user owns. Shipping and payment are
// captured here during checkout and moved onto the order at confirmation.
type Cart struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Shipping  *types.ShippingDetails `gorm:"column:shipping;type:jsonb;serializer:json"`
	Payment   *types.PaymentDetails  `gorm:"column:payment;type:jsonb;serializer:json"`
	Items     []CartItem             `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Cart) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
