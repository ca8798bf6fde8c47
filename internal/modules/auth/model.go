package auth

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         Role      `gorm:"size:16;not null;default:customer"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

// Session is a database-backed login. Its ID is the cookie value.
type Session struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `gorm:"type:varchar(36);not null;index:ix_sessions_user_id"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }

// Models lists the tables owned by this package, for migrations.
func Models() []any { return []any{&User{}, &Session{}} }

// Identity is who is making a request. The zero value is anonymous.
type Identity struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

func (i Identity) Authenticated() bool { return i.UserID != "" }
func (i Identity) IsAdmin() bool       { return i.Authenticated() && i.Role == RoleAdmin }

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}
