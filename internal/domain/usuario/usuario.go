package usuario

import (
	"strings"

	"github.com/geocoder89/vallas-api/internal/dates"
)

const (
	RolAdmin = "admin"
	RolUser  = "user"
)

// Usuario is the stored record. Password holds a bcrypt hash, or plaintext
// for accounts created before hashing that have not logged in since.
type Usuario struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rol       string `json:"rol"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Response is what the API returns for a user; it never carries the password.
type Response struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Rol       string  `json:"rol"`
	CreatedAt *string `json:"createdAt"`
}

type CreateRequest struct {
	Username  string `json:"username" binding:"required,max=60"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Rol       string `json:"rol" binding:"omitempty,oneof=admin user"`
	CreatedAt string `json:"createdAt" binding:"omitempty,fecha"`
}

type UpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=60"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Rol      *string `json:"rol" binding:"omitempty,oneof=admin user"`
}

type PasswordResetRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New builds the stored user; hash is the already hashed password.
func New(req CreateRequest, hash, createdAt string) Usuario {
	rol := req.Rol
	if rol == "" {
		rol = RolUser
	}

	return Usuario{
		Username:  strings.TrimSpace(req.Username),
		Email:     NormalizeEmail(req.Email),
		Password:  hash,
		Rol:       rol,
		CreatedAt: createdAt,
	}
}

// Fields returns the non-password fields the request changes. Password
// hashing is left to the caller.
func (r UpdateRequest) Fields() map[string]any {
	f := make(map[string]any, 3)
	if r.Username != nil {
		f["username"] = strings.TrimSpace(*r.Username)
	}
	if r.Email != nil {
		f["email"] = NormalizeEmail(*r.Email)
	}
	if r.Rol != nil {
		f["rol"] = *r.Rol
	}
	return f
}

func (u Usuario) ToResponse() Response {
	var createdAt *string
	if u.CreatedAt != "" {
		s := dates.FormatString(u.CreatedAt)
		createdAt = &s
	}

	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Rol:       u.Rol,
		CreatedAt: createdAt,
	}
}

func ToResponses(users []Usuario) []Response {
	out := make([]Response, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out
}
