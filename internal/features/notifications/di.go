package notifications

var notificationRepository = &NotificationRepository{}

var notificationService = newNotificationService(notificationRepository)

var notificationController = &NotificationController{
	notificationService: notificationService,
}

func GetNotificationService() *NotificationService {
	return notificationService
}

func GetNotificationRepository() *NotificationRepository {
	return notificationRepository
}

func GetNotificationController() *NotificationController {
	return notificationController
}
