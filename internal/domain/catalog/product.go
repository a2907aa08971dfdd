package catalog

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rarerevisit/backend/internal/domain/shared"
)

// Product represents a catalogue item the brand promotes on social platforms
// It is the aggregate root for catalogue operations
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ImageURL    string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(50);index"` // e.g. "Men", "Women", "Unisex"
	Mood        string          `gorm:"type:varchar(50);index"` // e.g. "Sensual", "Fresh", "Woody", "Floral"
	Sizes       string          `gorm:"type:jsonb"`             // JSON array of size labels
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalogue product
func NewProduct(name, description string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		Sizes:             "[]",
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdatePrice updates the product price
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetImageURL sets the product image URL
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCategory sets the product category
func (p *Product) SetCategory(category string) error {
	if len(category) > 50 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 50 characters")
	}

	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMood sets the product mood descriptor
func (p *Product) SetMood(mood string) error {
	if len(mood) > 50 {
		return shared.NewDomainError("INVALID_MOOD", "Mood cannot exceed 50 characters")
	}

	p.Mood = mood
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSizes replaces the available size labels
func (p *Product) SetSizes(sizes []string) error {
	if sizes == nil {
		sizes = []string{}
	}
	data, err := json.Marshal(sizes)
	if err != nil {
		return shared.NewDomainError("INVALID_SIZES", "Sizes must be serializable")
	}

	p.Sizes = string(data)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// GetSizes returns the available size labels
func (p *Product) GetSizes() []string {
	if p.Sizes == "" {
		return []string{}
	}
	var sizes []string
	if err := json.Unmarshal([]byte(p.Sizes), &sizes); err != nil {
		return []string{}
	}
	return sizes
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
