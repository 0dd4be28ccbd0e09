package domain

// User Model
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`            // Primary key
	Username       string `gorm:"unique;not null" json:"username"` // Unique username
	Email          string `gorm:"unique;not null" json:"email"`    // Unique email address
	FullName       string `json:"full_name"`                       // Display name
	HashedPassword string `gorm:"not null" json:"-"`               // Hashed password, never serialized
	IsAdmin        bool   `gorm:"default:false" json:"is_admin"`   // Admin flag
}
