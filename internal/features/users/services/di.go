package users_services

import (
	users_interfaces "etude-backend/internal/features/users/interfaces"
	users_repositories "etude-backend/internal/features/users/repositories"
)

var userService = &UserService{
	users_repositories.GetUserRepository(),
	nil,
	[]users_interfaces.UserSignUpListener{},
}

func GetUserService() *UserService {
	return userService
}
