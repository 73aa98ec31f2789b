package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harithahub/storefront-backend/internal/accounts"
	"github.com/harithahub/storefront-backend/internal/catalog"
	"github.com/harithahub/storefront-backend/internal/orders"
	"github.com/harithahub/storefront-backend/internal/videos"
	pkgauth "github.com/harithahub/storefront-backend/pkg/auth"
	"github.com/harithahub/storefront-backend/pkg/config"
	"github.com/harithahub/storefront-backend/pkg/logger"
	"github.com/harithahub/storefront-backend/pkg/redis"
	"github.com/harithahub/storefront-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAccountsService struct{}

func (stubAccountsService) Register(ctx context.Context, input accounts.RegisterInput) (*accounts.AuthResult, error) {
	return &accounts.AuthResult{}, nil
}

func (stubAccountsService) Login(ctx context.Context, input accounts.LoginInput) (*accounts.AuthResult, error) {
	return &accounts.AuthResult{}, nil
}

func (stubAccountsService) UpdateProfile(ctx context.Context, userID uuid.UUID, input accounts.UpdateProfileInput) (*accounts.Profile, error) {
	return &accounts.Profile{ID: userID}, nil
}

func (stubAccountsService) Delete(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) Create(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductView, error) {
	panic("unimplemented")
}

func (stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*catalog.ProductView, error) {
	return &catalog.ProductView{ID: id}, nil
}

func (stubCatalogService) List(ctx context.Context) ([]catalog.ProductView, error) {
	return []catalog.ProductView{}, nil
}

func (stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubOrdersService struct {
	listOrders func(ctx context.Context, userID uuid.UUID) ([]orders.OrderView, error)
}

func (stubOrdersService) UpsertItem(ctx context.Context, userID, productID uuid.UUID, quantity int) ([]orders.CartLine, error) {
	return []orders.CartLine{}, nil
}

func (stubOrdersService) SyncCart(ctx context.Context, userID uuid.UUID, items []orders.SyncItem) ([]orders.CartLine, error) {
	return []orders.CartLine{}, nil
}

func (stubOrdersService) CheckoutView(ctx context.Context, userID uuid.UUID) (*orders.CheckoutSummary, error) {
	return &orders.CheckoutSummary{}, nil
}

func (stubOrdersService) SaveShipping(ctx context.Context, userID uuid.UUID, details types.ShippingDetails) error {
	return nil
}

func (stubOrdersService) SavePayment(ctx context.Context, userID uuid.UUID, details types.PaymentDetails) error {
	return nil
}

func (stubOrdersService) Confirm(ctx context.Context, userID uuid.UUID) (*orders.OrderView, error) {
	return &orders.OrderView{}, nil
}

func (s stubOrdersService) ListOrders(ctx context.Context, userID uuid.UUID) ([]orders.OrderView, error) {
	if s.listOrders != nil {
		return s.listOrders(ctx, userID)
	}
	return []orders.OrderView{}, nil
}

type stubVideosService struct{}

func (stubVideosService) Create(ctx context.Context, input videos.CreateVideoInput) (*videos.VideoView, error) {
	panic("unimplemented")
}

func (stubVideosService) List(ctx context.Context) ([]videos.VideoView, error) {
	return []videos.VideoView{}, nil
}

func (stubVideosService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:          "secret",
			Issuer:          "issuer",
			ExpirationHours: 1,
		},
		Media: config.MediaConfig{
			UploadDir:    "uploads",
			PublicPrefix: "/uploads",
			MaxUploadMB:  1,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		nil, // upload store
		nil, // metrics registry
		nil, // http metrics
		stubAccountsService{},
		stubCatalogService{},
		stubOrdersService{},
		stubVideosService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "gardener@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if env := resp.Header().Get("X-Haritha-Env"); env != "test" {
		t.Fatalf("expected env header test got %q", env)
	}
}

func TestCartRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/checkout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestCartSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for checkout view got %d", resp.Code)
	}
}

func TestOrdersRequireJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/confirm", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for confirm without token got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodPost, "/api/v1/orders/confirm", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for confirm got %d", resp.Code)
	}
}

func TestProductListIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public product list got %d", resp.Code)
	}
}

func TestProductDetailRejectsBadID(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed product id got %d", resp.Code)
	}
}

func TestLoginRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestRegisterAcceptsGoodJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"full_name":"Rosa","email":"rosa@example.com","password":"longenough","confirm_password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for valid registration got %d", resp.Code)
	}
}
