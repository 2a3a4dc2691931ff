package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/storage"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrStorageDisabled  = errors.New("document storage is not configured")
)

type Service struct {
	repo  *repository.Repository
	store *storage.Service
	log   *logger.Logger
}

func New(repo *repository.Repository, store *storage.Service, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, log: log}
}

type UploadParams struct {
	DealershipID uuid.UUID
	FileName     string
	ContentType  string
	SizeBytes    int64
	Body         io.Reader
}

type DocumentResponse struct {
	ID           uuid.UUID `json:"id"`
	DealershipID uuid.UUID `json:"dealershipId"`
	UploadedBy   uuid.UUID `json:"uploadedBy"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	CreatedAt    time.Time `json:"createdAt"`
}

type DownloadLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Upload validates and stores the file, then records its metadata. If the
// metadata insert fails the object is removed again so storage and the
// database stay consistent.
func (s *Service) Upload(ctx context.Context, caller httpkit.Identity, params UploadParams) (DocumentResponse, error) {
	if s.store == nil {
		return DocumentResponse{}, ErrStorageDisabled
	}

	if err := s.store.ValidateUpload(params.ContentType, params.SizeBytes); err != nil {
		return DocumentResponse{}, err
	}

	objectKey, err := s.store.Upload(ctx, params.DealershipID, params.FileName, params.ContentType, params.SizeBytes, params.Body)
	if err != nil {
		return DocumentResponse{}, err
	}

	document, err := s.repo.Create(ctx, repository.CreateDocumentParams{
		DealershipID: params.DealershipID,
		UploadedBy:   caller.UserID(),
		FileName:     params.FileName,
		ObjectKey:    objectKey,
		ContentType:  params.ContentType,
		SizeBytes:    params.SizeBytes,
	})
	if err != nil {
		if removeErr := s.store.Remove(ctx, objectKey); removeErr != nil {
			s.log.Error("orphaned object after failed metadata insert", "error", removeErr, "object_key", objectKey)
		}
		return DocumentResponse{}, err
	}

	s.log.Info("document uploaded",
		"document_id", document.ID,
		"dealership_id", document.DealershipID,
		"size_bytes", document.SizeBytes,
	)
	return toDocumentResponse(document), nil
}

func (s *Service) ListByDealership(ctx context.Context, dealershipID uuid.UUID) ([]DocumentResponse, error) {
	documents, err := s.repo.ListByDealership(ctx, dealershipID)
	if err != nil {
		return nil, err
	}

	out := make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		out = append(out, toDocumentResponse(document))
	}
	return out, nil
}

// DownloadLink returns a short-lived presigned URL for the document.
func (s *Service) DownloadLink(ctx context.Context, id uuid.UUID) (DownloadLinkResponse, error) {
	if s.store == nil {
		return DownloadLinkResponse{}, ErrStorageDisabled
	}

	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DownloadLinkResponse{}, ErrDocumentNotFound
		}
		return DownloadLinkResponse{}, err
	}

	url, expiresAt, err := s.store.PresignedDownloadURL(ctx, document.ObjectKey, document.FileName)
	if err != nil {
		return DownloadLinkResponse{}, err
	}

	return DownloadLinkResponse{URL: url, ExpiresAt: expiresAt}, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if s.store != nil {
		if err := s.store.Remove(ctx, document.ObjectKey); err != nil {
			s.log.Error("remove stored object", "error", err, "object_key", document.ObjectKey)
		}
	}
	return nil
}

func toDocumentResponse(d repository.Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		DealershipID: d.DealershipID,
		UploadedBy:   d.UploadedBy,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		CreatedAt:    d.CreatedAt,
	}
}
