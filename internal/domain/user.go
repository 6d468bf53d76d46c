package domain

import "time"

type User struct {
	UserID         string    `json:"id" dynamodbav:"user_id"`
	UserName       string    `json:"userName" dynamodbav:"username"`
	Email          string    `json:"email" dynamodbav:"email"`
	Phone          *string   `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash   string    `json:"-" dynamodbav:"password_hash"`
	FirstName      string    `json:"firstName,omitempty" dynamodbav:"first_name"`
	LastName       string    `json:"lastName,omitempty" dynamodbav:"last_name"`
	ProfilePicture string    `json:"profilePicture,omitempty" dynamodbav:"profile_picture"`
	Role           []string  `json:"role" dynamodbav:"role"`
	IsAdmin        bool      `json:"isAdmin" dynamodbav:"is_admin"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// UpdateUserRequest carries the self-service profile update fields. All fields
// are optional; validation mirrors the account rules enforced at signup.
type UpdateUserRequest struct {
	Password       *string  `json:"password" validate:"omitempty,min=6"`
	FirstName      *string  `json:"firstName" validate:"omitempty,min=4,max=20"`
	LastName       *string  `json:"lastName" validate:"omitempty,min=4,max=20"`
	UserName       *string  `json:"userName" validate:"omitempty,min=5,max=16,lowercase,alphanum"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	ProfilePicture *string  `json:"profilePicture"`
	Role           []string `json:"role"`
}
