package entity

import (
	"time"
)

// DefaultGender is stored when the client does not inform one.
const DefaultGender = "Não informado"

// User is a registered account. Password holds the bcrypt hash and must
// never be logged or serialized into responses.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Phone     string
	Gender    string
	Admin     bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
