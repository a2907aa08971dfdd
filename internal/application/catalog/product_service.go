package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/catalog"
	"github.com/rarerevisit/backend/internal/domain/shared"
)

// ProductService handles catalogue business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}

	if req.ImageURL != "" {
		product.SetImageURL(req.ImageURL)
	}
	if req.Category != "" {
		if err := product.SetCategory(req.Category); err != nil {
			return nil, err
		}
	}
	if req.Mood != "" {
		if err := product.SetMood(req.Mood); err != nil {
			return nil, err
		}
	}
	if len(req.Sizes) > 0 {
		if err := product.SetSizes(req.Sizes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.UpdatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		product.SetImageURL(*req.ImageURL)
	}
	if req.Category != nil {
		if err := product.SetCategory(*req.Category); err != nil {
			return nil, err
		}
	}
	if req.Mood != nil {
		if err := product.SetMood(*req.Mood); err != nil {
			return nil, err
		}
	}
	if req.Sizes != nil {
		if err := product.SetSizes(req.Sizes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

// List retrieves products matching the filter, newest first
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Mood != "" {
		domainFilter.Filters["mood"] = filter.Mood
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	return responses, total, nil
}
