package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harithahub/storefront-backend/api/responses"
	"github.com/harithahub/storefront-backend/api/validators"
	"github.com/harithahub/storefront-backend/internal/videos"
	"github.com/harithahub/storefront-backend/pkg/config"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
	"github.com/harithahub/storefront-backend/pkg/logger"
)

// VideoCreate handles multipart tutorial uploads.
func VideoCreate(svc videos.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "videos service unavailable"))
			return
		}

		maxBytes := int64(media.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("video")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "video file is required"))
			return
		}
		defer file.Close()

		view, err := svc.Create(r.Context(), videos.CreateVideoInput{
			Title:       validators.FormValue(r, "title"),
			Description: validators.FormValue(r, "description"),
			File:        file,
			FileName:    header.Filename,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// VideoList returns every tutorial, newest first.
func VideoList(svc videos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "videos service unavailable"))
			return
		}

		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// VideoDelete removes a tutorial and its stored file.
func VideoDelete(svc videos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "videos service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "videoId"), "videoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
