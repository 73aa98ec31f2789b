package videos

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harithahub/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
)

type memFile struct {
	*strings.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(content string) multipart.File {
	return memFile{strings.NewReader(content)}
}

type fakeFileStore struct {
	saved   map[string]bool
	saveErr error
	deleted []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: map[string]bool{}}
}

func (f *fakeFileStore) Save(file multipart.File, originalName string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := "stored-" + originalName
	f.saved[name] = true
	return name, nil
}

func (f *fakeFileStore) Delete(name string) error {
	f.deleted = append(f.deleted, name)
	delete(f.saved, name)
	return nil
}

func (f *fakeFileStore) PublicPath(name string) string {
	if name == "" {
		return ""
	}
	return "/uploads/" + name
}

func newTestService(t *testing.T) (Service, *fakeFileStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Video{}))

	files := newFakeFileStore()
	svc, err := NewService(NewRepository(conn), files, nil)
	require.NoError(t, err)
	return svc, files
}

func TestCreateAndListVideos(t *testing.T) {
	svc, files := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateVideoInput{
		Title:       "Composting 101",
		Description: "Turning kitchen waste into compost",
		File:        newMemFile("video-bytes"),
		FileName:    "composting.mp4",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, view.ID)
	require.Equal(t, "/uploads/stored-composting.mp4", view.VideoURL)
	require.Len(t, files.saved, 1)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Composting 101", list[0].Title)
}

func TestCreateVideoValidation(t *testing.T) {
	svc, files := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateVideoInput{
		Description: "no title",
		File:        newMemFile("x"),
		FileName:    "a.mp4",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(ctx, CreateVideoInput{
		Title:       "no file",
		Description: "still no file",
	})
	require.Error(t, err)
	require.Empty(t, files.saved)
}

func TestCreateVideoStoreFailure(t *testing.T) {
	svc, files := newTestService(t)
	files.saveErr = errors.New("disk full")

	_, err := svc.Create(context.Background(), CreateVideoInput{
		Title:       "Composting 101",
		Description: "desc",
		File:        newMemFile("x"),
		FileName:    "a.mp4",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeInternal, typed.Code())
}

func TestDeleteVideoRemovesFileThenRow(t *testing.T) {
	svc, files := newTestService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateVideoInput{
		Title:       "Composting 101",
		Description: "desc",
		File:        newMemFile("x"),
		FileName:    "a.mp4",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, view.ID))
	require.Len(t, files.deleted, 1)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	err = svc.Delete(ctx, view.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
