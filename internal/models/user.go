package models

// User represents a registered account. The password hash never leaves
// the service, so it carries no json tag.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,min=3,max=100"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
}

// Credentials is the request body for registration and login.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}
