package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harithahub/storefront-backend/pkg/enums"
)

// Product represents a catalog listing. The optional gardening attributes are
// stored as plain text and may be empty.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name          string                `gorm:"column:name;not null"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Description   string                `gorm:"column:description;not null"`
	ImagePath     string                `gorm:"column:image_path;not null"`
	StockQuantity int                   `gorm:"column:stock_quantity;not null;default:0"`
	Category      enums.ProductCategory `gorm:"column:category;type:text;not null"`
	PlantType     enums.PlantType       `gorm:"column:plant_type;type:text;not null;default:''"`
	Sunlight      enums.Sunlight        `gorm:"column:sunlight;type:text;not null;default:''"`
	Space         enums.Space           `gorm:"column:space;type:text;not null;default:''"`
	Growth        enums.Growth          `gorm:"column:growth;type:text;not null;default:''"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
