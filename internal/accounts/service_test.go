package accounts

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harithahub/storefront-backend/pkg/config"
	"github.com/harithahub/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo, config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "harithahub",
		ExpirationHours: 24,
	}, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}, nil)
	require.NoError(t, err)
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "Asha@Example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "asha@example.com", res.User.Email)
	require.NotEqual(t, uuid.Nil, res.User.ID)

	login, err := svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "grow-green"})
	require.NoError(t, err)
	require.Equal(t, res.User.ID, login.User.ID)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "one",
		ConfirmPassword: "two",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	input := RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "correct",
		ConfirmPassword: "correct",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wrong"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)

	contact := "0771234567"
	profile, err := svc.UpdateProfile(ctx, res.User.ID, UpdateProfileInput{ContactNumber: &contact})
	require.NoError(t, err)
	require.Equal(t, "Asha Menon", profile.FullName)
	require.NotNil(t, profile.ContactNumber)
	require.Equal(t, contact, *profile.ContactNumber)

	name := "Asha M."
	profile, err = svc.UpdateProfile(ctx, res.User.ID, UpdateProfileInput{FullName: &name})
	require.NoError(t, err)
	require.Equal(t, name, profile.FullName)
	require.NotNil(t, profile.ContactNumber, "omitted fields keep their values")
}

func TestUpdateProfileChangesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)

	email := " Asha.New@Example.com "
	profile, err := svc.UpdateProfile(ctx, res.User.ID, UpdateProfileInput{Email: &email})
	require.NoError(t, err)
	require.Equal(t, "asha.new@example.com", profile.Email)
	require.Equal(t, "Asha Menon", profile.FullName, "omitted fields keep their values")

	login, err := svc.Login(ctx, LoginInput{Email: "asha.new@example.com", Password: "grow-green"})
	require.NoError(t, err)
	require.Equal(t, res.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "grow-green"})
	require.Error(t, err)
}

func TestUpdateProfileEmailCannotBeBlank(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.UpdateProfile(ctx, res.User.ID, UpdateProfileInput{Email: &blank})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateProfileEmailTakenIsConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)

	other, err := svc.Register(ctx, RegisterInput{
		FullName:        "Ravi Perera",
		Email:           "ravi@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)

	taken := "asha@example.com"
	_, err = svc.UpdateProfile(ctx, other.User.ID, UpdateProfileInput{Email: &taken})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Ghost"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{FullName: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteAccount(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		FullName:        "Asha Menon",
		Email:           "asha@example.com",
		Password:        "grow-green",
		ConfirmPassword: "grow-green",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.User.ID))

	_, err = repo.FindByID(ctx, res.User.ID)
	require.Error(t, err)

	err = svc.Delete(ctx, res.User.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
