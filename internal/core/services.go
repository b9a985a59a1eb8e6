package core

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(db DB, jwtSecret, jwtIssuer string) *Services {
	return &Services{
		Auth: NewAuthService(db, jwtSecret, jwtIssuer),
		User: NewUserService(db),
	}
}
