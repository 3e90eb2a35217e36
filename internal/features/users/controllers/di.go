package users_controllers

import (
	users_services "etude-backend/internal/features/users/services"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	users_services.GetUserService(),
	rate.NewLimiter(rate.Limit(100), 100),
}

func GetUserController() *UserController {
	return userController
}
