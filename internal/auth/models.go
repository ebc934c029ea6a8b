package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAlumni  = "alumni"
	RoleAdmin   = "admin"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

const (
	PurposeRegister = "register"
	PurposeLogin    = "login"
	PurposeReset    = "reset"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	IsSuperAdmin bool               `bson:"is_super_admin"`
	AvatarURL    string             `bson:"avatar_url,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// PublicUser is the only user shape handlers may return. The password hash
// never crosses this boundary.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role}
}

// OtpToken is the ephemeral one-time-code record. At most one lives per
// (email, purpose); issuing replaces, verifying consumes.
type OtpToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Purpose   string             `bson:"purpose"`
	CodeHash  string             `bson:"code_hash"`
	ExpiresAt time.Time          `bson:"expires_at"`
	Attempts  int                `bson:"attempts"`
	Meta      bson.M             `bson:"meta,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher alumni admin"`
}

type VerifyRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Otp      string `json:"otp" validate:"required,len=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student teacher alumni admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6"`
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Otp         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ResendOtpRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=register login reset"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *PublicUser `json:"user"`
}
