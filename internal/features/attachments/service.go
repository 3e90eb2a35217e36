package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"etude-backend/internal/config"
	"etude-backend/internal/features/pages"
	"etude-backend/internal/features/shares"
	users_models "etude-backend/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrStorageDisabled is returned when no object storage is configured.
var ErrStorageDisabled = errors.New("file storage is not configured")

type AttachmentService struct {
	attachmentRepository *AttachmentRepository
	pageService          *pages.PageService

	minioClient *minio.Client
	bucket      string

	ensureBucketOnce sync.Once
	ensureBucketErr  error
}

func newAttachmentService(
	repository *AttachmentRepository,
	pageService *pages.PageService,
) *AttachmentService {
	service := &AttachmentService{
		attachmentRepository: repository,
		pageService:          pageService,
	}

	env := config.GetEnv()
	if env.MinioEndpoint == "" {
		return service
	}

	client, err := minio.New(env.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(env.MinioAccessKey, env.MinioSecretKey, ""),
		Secure: env.MinioUseSSL,
	})
	if err != nil {
		return service
	}

	service.minioClient = client
	service.bucket = env.MinioBucket

	return service
}

func (s *AttachmentService) IsEnabled() bool {
	return s.minioClient != nil
}

// UploadAttachment stores a file against a page. Requires edit access.
func (s *AttachmentService) UploadAttachment(
	ctx context.Context,
	user *users_models.User,
	pageID uuid.UUID,
	fileName string,
	contentType string,
	size int64,
	reader io.Reader,
) (*Attachment, error) {
	if !s.IsEnabled() {
		return nil, ErrStorageDisabled
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", shares.ErrInvalidInput)
	}

	decision, err := s.pageService.GetEffectivePageAccess(pageID, user)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}
	if !decision.Level.AtLeast(shares.AccessLevelEdit) {
		return nil, fmt.Errorf("%w: edit access is required to upload attachments", shares.ErrForbidden)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	attachment := &Attachment{
		ID:               uuid.New(),
		PageID:           pageID,
		FileName:         fileName,
		ContentType:      contentType,
		SizeBytes:        size,
		ObjectKey:        fmt.Sprintf("pages/%s/%s/%s", pageID, uuid.New(), fileName),
		UploadedByUserID: user.ID,
		CreatedAt:        time.Now().UTC(),
	}

	_, err = s.minioClient.PutObject(
		ctx,
		s.bucket,
		attachment.ObjectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	if err := s.attachmentRepository.Create(attachment); err != nil {
		return nil, err
	}

	return attachment, nil
}

// DownloadAttachment streams a stored file. Requires view access to the
// page.
func (s *AttachmentService) DownloadAttachment(
	ctx context.Context,
	user *users_models.User,
	attachmentID uuid.UUID,
) (*Attachment, io.ReadCloser, error) {
	if !s.IsEnabled() {
		return nil, nil, ErrStorageDisabled
	}

	attachment, err := s.attachmentRepository.GetByID(attachmentID)
	if err != nil {
		return nil, nil, err
	}
	if attachment == nil {
		return nil, nil, fmt.Errorf("%w: attachment does not exist", shares.ErrNotFound)
	}

	decision, err := s.pageService.GetEffectivePageAccess(attachment.PageID, user)
	if err != nil {
		return nil, nil, err
	}
	if !decision.HasAccess {
		return nil, nil, fmt.Errorf("%w: attachment does not exist", shares.ErrNotFound)
	}

	object, err := s.minioClient.GetObject(ctx, s.bucket, attachment.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return attachment, object, nil
}

// DeleteAttachment removes a stored file. Requires edit access.
func (s *AttachmentService) DeleteAttachment(
	ctx context.Context,
	user *users_models.User,
	attachmentID uuid.UUID,
) error {
	if !s.IsEnabled() {
		return ErrStorageDisabled
	}

	attachment, err := s.attachmentRepository.GetByID(attachmentID)
	if err != nil {
		return err
	}
	if attachment == nil {
		return fmt.Errorf("%w: attachment does not exist", shares.ErrNotFound)
	}

	decision, err := s.pageService.GetEffectivePageAccess(attachment.PageID, user)
	if err != nil {
		return err
	}
	if !decision.HasAccess {
		return fmt.Errorf("%w: attachment does not exist", shares.ErrNotFound)
	}
	if !decision.Level.AtLeast(shares.AccessLevelEdit) {
		return fmt.Errorf("%w: edit access is required to delete attachments", shares.ErrForbidden)
	}

	err = s.minioClient.RemoveObject(ctx, s.bucket, attachment.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}

	return s.attachmentRepository.Delete(attachmentID)
}

// ListAttachments lists the files of a page. Requires view access.
func (s *AttachmentService) ListAttachments(
	user *users_models.User,
	pageID uuid.UUID,
) ([]Attachment, error) {
	decision, err := s.pageService.GetEffectivePageAccess(pageID, user)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}

	return s.attachmentRepository.ListByPageID(pageID)
}

func (s *AttachmentService) ensureBucket(ctx context.Context) error {
	s.ensureBucketOnce.Do(func() {
		exists, err := s.minioClient.BucketExists(ctx, s.bucket)
		if err != nil {
			s.ensureBucketErr = fmt.Errorf("failed to check bucket: %w", err)
			return
		}
		if exists {
			return
		}

		err = s.minioClient.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			s.ensureBucketErr = fmt.Errorf("failed to create bucket: %w", err)
		}
	})

	return s.ensureBucketErr
}
