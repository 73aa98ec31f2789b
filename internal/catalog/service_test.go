package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harithahub/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
)

type fakeFileStore struct {
	files     map[string][]byte
	saveErr   error
	deleted   []string
	deleteErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (f *fakeFileStore) SaveBytes(name string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.files[name] = data
	return nil
}

func (f *fakeFileStore) Delete(name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, name)
	delete(f.files, name)
	return nil
}

func (f *fakeFileStore) PublicPath(name string) string {
	if name == "" {
		return ""
	}
	return "/uploads/" + name
}

type fakeCompressor struct {
	err error
}

func (f *fakeCompressor) Compress(r io.Reader) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return append([]byte("jpeg:"), data...), nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return conn
}

func newTestService(t *testing.T) (Service, *fakeFileStore, *fakeCompressor) {
	t.Helper()
	files := newFakeFileStore()
	comp := &fakeCompressor{}
	svc, err := NewService(NewRepository(newTestDB(t)), files, comp, nil)
	require.NoError(t, err)
	return svc, files, comp
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Name:          "Tomato Seeds",
		Description:   "Heirloom tomato seeds",
		Price:         decimal.RequireFromString("149.99"),
		StockQuantity: 25,
		Category:      "Seeds",
		PlantType:     "Vegetables",
		Sunlight:      "Full Sun",
		Space:         "Balcony",
		Growth:        "Fast Growing",
		Image:         strings.NewReader("raw-image"),
		ImageName:     "tomato.png",
	}
}

func TestCreateProduct(t *testing.T) {
	svc, files, _ := newTestService(t)

	view, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, view.ID)
	require.True(t, view.Price.Equal(decimal.RequireFromString("149.99")))
	require.Contains(t, view.ImageURL, "/uploads/compressed-")
	require.True(t, strings.HasSuffix(view.ImageURL, ".jpg"))
	require.Len(t, files.files, 1)
}

func TestCreateProductOptionalAttributesMayBeEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := validInput()
	input.PlantType = ""
	input.Sunlight = ""
	input.Space = ""
	input.Growth = ""

	view, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Empty(t, string(view.PlantType))
}

func TestCreateProductRejectsBadEnum(t *testing.T) {
	svc, files, _ := newTestService(t)

	input := validInput()
	input.Category = "Gadgets"

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Empty(t, files.files, "nothing persisted on validation failure")
}

func TestCreateProductCompressionFailurePersistsNothing(t *testing.T) {
	svc, files, comp := newTestService(t)
	comp.err = errors.New("corrupt image")

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeInternal, typed.Code())
	require.Empty(t, files.files)
}

func TestGetAndList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Get(ctx, uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteRemovesImageThenRow(t *testing.T) {
	svc, files, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.Len(t, files.deleted, 1)

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
