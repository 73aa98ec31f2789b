package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harithahub/storefront-backend/pkg/db/models"
	"github.com/harithahub/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
	pkgimaging "github.com/harithahub/storefront-backend/pkg/imaging"
	"github.com/harithahub/storefront-backend/pkg/logger"
)

// ProductRepository is the persistence surface the service needs.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// FileStore is the upload persistence surface.
type FileStore interface {
	SaveBytes(name string, data []byte) error
	Delete(name string) error
	PublicPath(name string) string
}

// Compressor re-encodes an uploaded image into a bounded rendition.
type Compressor interface {
	Compress(r io.Reader) ([]byte, error)
}

// Service manages product listings including their image renditions.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductView, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context) ([]ProductView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       ProductRepository
	files      FileStore
	compressor Compressor
	logg       *logger.Logger
}

// NewService builds a catalog service backed by the provided stack.
func NewService(repo ProductRepository, files FileStore, compressor Compressor, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if files == nil {
		return nil, fmt.Errorf("file store required")
	}
	if compressor == nil {
		return nil, fmt.Errorf("image compressor required")
	}
	return &service{repo: repo, files: files, compressor: compressor, logg: logg}, nil
}

// CreateProductInput captures a new listing and its uploaded image.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	PlantType     string
	Sunlight      string
	Space         string
	Growth        string
	Image         io.Reader
	ImageName     string
}

// ProductView is the projection returned to clients.
type ProductView struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Price         decimal.Decimal       `json:"price"`
	Description   string                `json:"description"`
	ImageURL      string                `json:"image_url"`
	StockQuantity int                   `json:"stock_quantity"`
	Category      enums.ProductCategory `json:"category"`
	PlantType     enums.PlantType       `json:"plant_type,omitempty"`
	Sunlight      enums.Sunlight        `json:"sunlight,omitempty"`
	Space         enums.Space           `json:"space,omitempty"`
	Growth        enums.Growth          `json:"growth,omitempty"`
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	plantType, err := enums.ParsePlantType(input.PlantType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown plant type")
	}
	sunlight, err := enums.ParseSunlight(input.Sunlight)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sunlight")
	}
	space, err := enums.ParseSpace(input.Space)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown space")
	}
	growth, err := enums.ParseGrowth(input.Growth)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown growth")
	}
	if input.Image == nil || input.ImageName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is required")
	}

	compressed, err := s.compressor.Compress(input.Image)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compress image")
	}

	imageName := pkgimaging.CompressedName(fmt.Sprintf("%s-%s", uuid.NewString()[:8], input.ImageName))
	if err := s.files.SaveBytes(imageName, compressed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store image")
	}

	product := &models.Product{
		Name:          input.Name,
		Price:         input.Price.Round(2),
		Description:   input.Description,
		ImagePath:     imageName,
		StockQuantity: input.StockQuantity,
		Category:      category,
		PlantType:     plantType,
		Sunlight:      sunlight,
		Space:         space,
		Growth:        growth,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if delErr := s.files.Delete(imageName); delErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "image", imageName), "catalog.orphan_image")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	view := s.viewOf(*created)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := s.viewOf(*product)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]ProductView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	views := make([]ProductView, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if row.ID == uuid.Nil {
			skipped++
			continue
		}
		views = append(views, s.viewOf(row))
	}
	if skipped > 0 && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "skipped", skipped), "catalog.list.skipped_rows")
	}
	return views, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.files.Delete(product.ImagePath); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove image")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) viewOf(product models.Product) ProductView {
	return ProductView{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Description:   product.Description,
		ImageURL:      s.files.PublicPath(product.ImagePath),
		StockQuantity: product.StockQuantity,
		Category:      product.Category,
		PlantType:     product.PlantType,
		Sunlight:      product.Sunlight,
		Space:         product.Space,
		Growth:        product.Growth,
	}
}
