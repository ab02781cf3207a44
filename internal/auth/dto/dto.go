package dto

type SignupDTO struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6,max=20,strongpwd"`
	Username  string `json:"username"  validate:"required,alphanum,min=3,max=20"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
}

type SigninDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordDTO struct {
	Password    string `json:"password"    validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=20,strongpwd"`
}
