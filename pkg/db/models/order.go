package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harithahub/storefront-backend/pkg/enums"
	"github.com/harithahub/storefront-backend/pkg/types"
)

// Order is the immutable snapshot written at confirmation. Shipping, payment
// and line prices are copied verbatim from the cart.
type Order struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	Shipping  types.ShippingDetails `gorm:"column:shipping;type:jsonb;serializer:json;not null"`
	Payment   types.PaymentDetails  `gorm:"column:payment;type:jsonb;serializer:json;not null"`
	Total     decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null"`
	Status    enums.OrderStatus     `gorm:"column:status;type:text;not null"`
	Items     []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
