package store

import (
	"errors"

	"gorm.io/gorm"

	"sweetshop/internal/domain"
)

// SweetSpec carries the caller-supplied fields of a catalog item.
type SweetSpec struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetFilter holds the optional search criteria. Nil fields are no-ops;
// provided fields are ANDed together.
type SweetFilter struct {
	Name     *string  // substring match
	Category *string  // exact match
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
}

// CreateSweet inserts a new catalog item and returns the stored record.
func CreateSweet(db *gorm.DB, spec SweetSpec) (*domain.Sweet, error) {
	sweet := domain.Sweet{
		Name:     spec.Name,
		Category: spec.Category,
		Price:    spec.Price,
		Quantity: spec.Quantity,
	}
	if err := db.Create(&sweet).Error; err != nil {
		return nil, err
	}
	return &sweet, nil
}

// SweetByID returns the sweet with the given id, or nil if absent.
func SweetByID(db *gorm.DB, id uint) (*domain.Sweet, error) {
	var sweet domain.Sweet
	if err := db.First(&sweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sweet, nil
}

// ListSweets returns sweets in insertion order, windowed by skip/limit.
// A non-positive limit falls back to 100.
func ListSweets(db *gorm.DB, skip, limit int) ([]domain.Sweet, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	var sweets []domain.Sweet
	if err := db.Order("id").Offset(skip).Limit(limit).Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// SearchSweets returns the sweets matching every provided filter.
func SearchSweets(db *gorm.DB, filter SweetFilter) ([]domain.Sweet, error) {
	query := db.Model(&domain.Sweet{})
	if filter.Name != nil {
		query = query.Where("name LIKE ?", "%"+*filter.Name+"%")
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	var sweets []domain.Sweet
	if err := query.Order("id").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

// UpdateSweet replaces name, category and price of the sweet with the given
// id and returns the updated record, or ErrNotFound if the id is unknown.
// Quantity is left untouched; it only moves through purchase and restock.
func UpdateSweet(db *gorm.DB, id uint, name, category string, price float64) (*domain.Sweet, error) {
	sweet, err := SweetByID(db, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, ErrNotFound
	}
	sweet.Name = name
	sweet.Category = category
	sweet.Price = price
	if err := db.Model(sweet).Updates(map[string]any{
		"name":     name,
		"category": category,
		"price":    price,
	}).Error; err != nil {
		return nil, err
	}
	return sweet, nil
}

// DeleteSweet removes the sweet with the given id and returns the removed
// record, or ErrNotFound if the id is unknown.
func DeleteSweet(db *gorm.DB, id uint) (*domain.Sweet, error) {
	sweet, err := SweetByID(db, id)
	if err != nil {
		return nil, err
	}
	if sweet == nil {
		return nil, ErrNotFound
	}
	if err := db.Delete(&domain.Sweet{}, id).Error; err != nil {
		return nil, err
	}
	return sweet, nil
}

// PurchaseSweet decrements stock by quantity. The decrement is a single
// conditional UPDATE guarded by the current stock level, so two concurrent
// purchases can never drive the quantity below zero: the row check and the
// write happen in one statement on the database side.
func PurchaseSweet(db *gorm.DB, id uint, quantity int) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	res := db.Model(&domain.Sweet{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrOutOfStock
	}
	return SweetByID(db, id)
}

// RestockSweet increments stock by quantity. Non-positive quantities are
// rejected, so restock can never be used to drain stock.
func RestockSweet(db *gorm.DB, id uint, quantity int) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	res := db.Model(&domain.Sweet{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return SweetByID(db, id)
}
