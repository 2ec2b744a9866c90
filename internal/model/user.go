package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Subscription is a free-text area/property-type pair a user wants to follow.
// Nothing matches these against listings yet; they are stored verbatim.
type Subscription struct {
	Area string `json:"area"`
	Type string `json:"type"`
}

// Subscriptions is stored as a jsonb column.
type Subscriptions []Subscription

func (s Subscriptions) Value() (driver.Value, error) {
	if s == nil {
		s = Subscriptions{}
	}
	return json.Marshal(s)
}

func (s *Subscriptions) Scan(value interface{}) error {
	if value == nil {
		*s = Subscriptions{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for subscriptions column")
	}
	return json.Unmarshal(raw, s)
}

// User represents the user model stored in the database
type User struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Email         string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password      string         `json:"-" gorm:"type:varchar(255)"`
	Name          string         `json:"name" gorm:"type:varchar(100)"`
	Role          string         `json:"role" gorm:"type:varchar(20);default:user"`
	Subscriptions Subscriptions  `json:"subscriptions" gorm:"type:jsonb;default:'[]'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// PublicView returns the fields safe to hand back to clients. The
// password hash never leaves the server.
func (u *User) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
}
