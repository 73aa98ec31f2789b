package controllers

import (
	"net/http"
	"strconv"

	"github.com/harithahub/storefront-backend/api/validators"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
)

func parseFormInt(r *http.Request, key string) (int, error) {
	raw := validators.FormValue(r, key)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be an integer")
	}
	return value, nil
}
