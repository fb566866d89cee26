package services

import "fmt"

// LabelService renders shelf-label text for products. It depends on the
// category service for the grouping line printed above the price.
type LabelService struct {
	categories *CategoryService
}

// NewLabelService creates a LabelService over categories.
func NewLabelService(categories *CategoryService) *LabelService {
	return &LabelService{categories: categories}
}

// Render produces the three-line shelf label for a product.
func (s *LabelService) Render(p *Product) (string, error) {
	cat, err := s.categories.Get(p.CategoryID)
	if err != nil {
		return "", fmt.Errorf("label: category %d: %w", p.CategoryID, err)
	}
	return fmt.Sprintf("%s\n%s\nB/. %.2f", cat.Name, p.Name, p.Price), nil
}
