package domain

// Sweet Model
type Sweet struct {
	ID       uint    `gorm:"primaryKey" json:"id"`      // Primary key
	Name     string  `gorm:"not null" json:"name"`      // Product name
	Category string  `gorm:"not null" json:"category"`  // Catalog category
	Price    float64 `gorm:"not null" json:"price"`     // Unit price
	Quantity int     `gorm:"default:0" json:"quantity"` // Units in stock
}
