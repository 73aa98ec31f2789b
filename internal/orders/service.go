package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harithahub/storefront-backend/pkg/db/models"
	"github.com/harithahub/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
	"github.com/harithahub/storefront-backend/pkg/logger"
	"github.com/harithahub/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ProductLookup is the catalog surface the order workflow needs.
type ProductLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// ImageResolver maps stored image names to public URLs.
type ImageResolver interface {
	PublicPath(name string) string
}

// Service drives the cart and checkout workflow.
type Service interface {
	UpsertItem(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]CartLine, error)
	SyncCart(ctx context.Context, userID uuid.UUID, items []SyncItem) ([]CartLine, error)
	CheckoutView(ctx context.Context, userID uuid.UUID) (*CheckoutSummary, error)
	SaveShipping(ctx context.Context, userID uuid.UUID, details types.ShippingDetails) error
	SavePayment(ctx context.Context, userID uuid.UUID, details types.PaymentDetails) error
	Confirm(ctx context.Context, userID uuid.UUID) (*OrderView, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
}

type service struct {
	repo     *Repository
	products ProductLookup
	tx       txRunner
	images   ImageResolver
	logg     *logger.Logger
}

// NewService builds the order workflow service.
func NewService(repo *Repository, products ProductLookup, tx txRunner, images ImageResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if images == nil {
		return nil, fmt.Errorf("image resolver required")
	}
	return &service{repo: repo, products: products, tx: tx, images: images, logg: logg}, nil
}

// SyncItem is one entry of a full cart overwrite.
type SyncItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartLine is the stored state of one cart entry.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CheckoutLine expands a cart entry with live product data.
type CheckoutLine struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"image_url"`
	StockQuantity int             `json:"stock_quantity"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// CheckoutSummary is the pricing view shown before confirmation.
type CheckoutSummary struct {
	Lines    []CheckoutLine         `json:"lines"`
	Shipping *types.ShippingDetails `json:"shipping,omitempty"`
	Payment  *types.PaymentDetails  `json:"payment,omitempty"`
	Total    decimal.Decimal        `json:"total"`
}

// OrderLineView is one purchased line expanded with live product data.
type OrderLineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderView is the public projection of an order.
type OrderView struct {
	ID        uuid.UUID             `json:"id"`
	Status    enums.OrderStatus     `json:"status"`
	Total     decimal.Decimal       `json:"total"`
	Shipping  types.ShippingDetails `json:"shipping"`
	Payment   types.PaymentDetails  `json:"payment"`
	Items     []OrderLineView       `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
}

func (s *service) UpsertItem(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]CartLine, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	if quantity == 0 {
		return s.removeItem(ctx, userID, productID)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	existing := findLine(cart.Items, productID)
	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if requested > product.StockQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds stock").
			WithDetails(map[string]any{"available": product.StockQuantity})
	}

	if existing != nil {
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, requested); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Position:  nextPosition(cart.Items),
		}
		if err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
		}
	}

	return s.currentLines(ctx, userID)
}

func (s *service) removeItem(ctx context.Context, userID, productID uuid.UUID) ([]CartLine, error) {
	cart, err := s.repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	existing := findLine(cart.Items, productID)
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	if err := s.repo.DeleteItem(ctx, existing.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.currentLines(ctx, userID)
}

func (s *service) SyncCart(ctx context.Context, userID uuid.UUID, items []SyncItem) ([]CartLine, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if item.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
		}
		if item.Quantity > 0 {
			ids = append(ids, item.ProductID)
		}
	}

	known, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity == 0 {
			continue
		}
		product, ok := known[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		if item.Quantity > product.StockQuantity {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds stock").
				WithDetails(map[string]any{"product_id": item.ProductID, "available": product.StockQuantity})
		}
		kept = append(kept, models.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Position:  len(kept),
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		cart, err := txRepo.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		return txRepo.ReplaceItems(ctx, cart.ID, kept)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync cart")
	}

	return s.currentLines(ctx, userID)
}

func (s *service) CheckoutView(ctx context.Context, userID uuid.UUID) (*CheckoutSummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(cart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	known, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	summary := &CheckoutSummary{
		Shipping: cart.Shipping,
		Payment:  cart.Payment,
		Total:    decimal.Zero,
	}
	skipped := 0
	for _, item := range cart.Items {
		product, ok := known[item.ProductID]
		if !ok {
			skipped++
			continue
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Lines = append(summary.Lines, CheckoutLine{
			ProductID:     item.ProductID,
			Name:          product.Name,
			ImageURL:      s.images.PublicPath(product.ImagePath),
			StockQuantity: product.StockQuantity,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     lineTotal,
		})
		summary.Total = summary.Total.Add(lineTotal)
	}
	summary.Total = summary.Total.Round(2)
	if skipped > 0 && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "skipped", skipped), "checkout.missing_products")
	}
	return summary, nil
}

func (s *service) SaveShipping(ctx context.Context, userID uuid.UUID, details types.ShippingDetails) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !details.Complete() {
		return pkgerrors.New(pkgerrors.CodeValidation, "all shipping fields are required")
	}
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.UpdateShipping(ctx, cart.ID, &details); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save shipping")
	}
	return nil
}

func (s *service) SavePayment(ctx context.Context, userID uuid.UUID, details types.PaymentDetails) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !details.HasMethod() || !details.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if details.PaymentMethod == enums.PaymentMethodCard && !details.CardFieldsComplete() {
		return pkgerrors.New(pkgerrors.CodeValidation, "card details are incomplete")
	}
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.UpdatePayment(ctx, cart.ID, &details); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payment")
	}
	return nil
}

func (s *service) Confirm(ctx context.Context, userID uuid.UUID) (*OrderView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if cart.Shipping == nil || !cart.Shipping.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping details are required")
	}
	if cart.Payment == nil || !cart.Payment.HasMethod() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}

	lines := make([]models.OrderItem, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		if item.Quantity < 1 {
			continue
		}
		lines = append(lines, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Position:  len(lines),
		})
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		UserID:   userID,
		Shipping: *cart.Shipping,
		Payment:  *cart.Payment,
		Total:    total.Round(2),
		Status:   enums.OrderStatusConfirmed,
		Items:    lines,
	}

	// Stock is intentionally not decremented here; the catalog keeps its
	// quantities until a fulfilment flow adjusts them.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		return txRepo.ResetCart(ctx, cart.ID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm order")
	}

	if s.logg != nil {
		fields := map[string]any{"order_id": order.ID.String(), "total": order.Total.String()}
		s.logg.Info(s.logg.WithFields(ctx, fields), "order.confirmed")
	}

	view := s.orderView(ctx, *order)
	return &view, nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.orderView(ctx, row))
	}
	return views, nil
}

func (s *service) orderView(ctx context.Context, order models.Order) OrderView {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	known, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		known = nil
		if s.logg != nil {
			s.logg.Warn(ctx, "orders.expand_products_failed")
		}
	}

	view := OrderView{
		ID:        order.ID,
		Status:    order.Status,
		Total:     order.Total,
		Shipping:  order.Shipping,
		Payment:   order.Payment,
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		line := OrderLineView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if product, ok := known[item.ProductID]; ok {
			line.Name = product.Name
			line.ImageURL = s.images.PublicPath(product.ImagePath)
		}
		view.Items = append(view.Items, line)
	}
	return view
}

func (s *service) currentLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	cart, err := s.repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []CartLine{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	lines := make([]CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines, nil
}

func findLine(items []models.CartItem, productID uuid.UUID) *models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i]
		}
	}
	return nil
}

func nextPosition(items []models.CartItem) int {
	max := -1
	for _, item := range items {
		if item.Position > max {
			max = item.Position
		}
	}
	return max + 1
}
