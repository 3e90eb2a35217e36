package attachments

import (
	"sync"

	"etude-backend/internal/features/pages"
)

var attachmentRepository = &AttachmentRepository{}

var (
	attachmentService     *AttachmentService
	attachmentServiceOnce sync.Once
)

// GetAttachmentService is lazy so object storage configuration is only
// read once the feature is actually used.
func GetAttachmentService() *AttachmentService {
	attachmentServiceOnce.Do(func() {
		attachmentService = newAttachmentService(attachmentRepository, pages.GetPageService())
	})

	return attachmentService
}

func GetAttachmentController() *AttachmentController {
	return &AttachmentController{
		attachmentService: GetAttachmentService(),
	}
}
