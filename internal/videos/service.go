package videos

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harithahub/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
	"github.com/harithahub/storefront-backend/pkg/logger"
)

// VideoRepository is the persistence surface the service needs.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	List(ctx context.Context) ([]models.Video, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// FileStore is the upload persistence surface.
type FileStore interface {
	Save(file multipart.File, originalName string) (string, error)
	Delete(name string) error
	PublicPath(name string) string
}

// Service manages tutorial video uploads.
type Service interface {
	Create(ctx context.Context, input CreateVideoInput) (*VideoView, error)
	List(ctx context.Context) ([]VideoView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  VideoRepository
	files FileStore
	logg  *logger.Logger
}

// NewService builds a videos service backed by the provided stack.
func NewService(repo VideoRepository, files FileStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("video repository required")
	}
	if files == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{repo: repo, files: files, logg: logg}, nil
}

// CreateVideoInput captures a new tutorial and its uploaded file.
type CreateVideoInput struct {
	Title       string
	Description string
	File        multipart.File
	FileName    string
}

// VideoView is the projection returned to clients.
type VideoView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
}

func (s *service) Create(ctx context.Context, input CreateVideoInput) (*VideoView, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.File == nil || input.FileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "video file is required")
	}

	stored, err := s.files.Save(input.File, input.FileName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store video")
	}

	video := &models.Video{
		Title:       input.Title,
		Description: input.Description,
		FilePath:    stored,
	}
	created, err := s.repo.Create(ctx, video)
	if err != nil {
		if delErr := s.files.Delete(stored); delErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "file", stored), "videos.orphan_file")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create video")
	}

	view := s.viewOf(*created)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]VideoView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list videos")
	}
	views := make([]VideoView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.viewOf(row))
	}
	return views, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "video id is required")
	}
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "video not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load video")
	}

	if err := s.files.Delete(video.FilePath); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove video file")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete video")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "video not found")
	}
	return nil
}

func (s *service) viewOf(video models.Video) VideoView {
	return VideoView{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    s.files.PublicPath(video.FilePath),
	}
}
