package services

import "arenacustoms/internal/domain"

// FilterByTag returns the products carrying tag, in order. An empty tag
// returns the list unchanged.
func FilterByTag(products []domain.Product, tag string) []domain.Product {
	if tag == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}
