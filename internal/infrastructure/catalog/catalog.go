package catalog

import (
	"encoding/json"
	"log"
	"os"

	"github.com/shoplens/backend/internal/domain"
)

// Catalog holds the full product catalog in memory. It is built once by
// Load and never mutated afterwards, so concurrent readers need no locks.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// Load reads the product catalog from a JSON file. A missing or corrupt
// file is not fatal: it logs the problem and returns an empty catalog so
// the service degrades to "no products found" instead of refusing to start.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[catalog] Failed to read %s: %v (serving empty catalog)", path, err)
		return New(nil)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("[catalog] Failed to parse %s: %v (serving empty catalog)", path, err)
		return New(nil)
	}

	log.Printf("[catalog] Loaded %d products from %s", len(products), path)
	return New(products)
}

// New builds a catalog from an in-memory product list, preserving order.
// Later duplicates of an ID do not shadow the first occurrence.
func New(products []domain.Product) *Catalog {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = p
		}
	}
	return &Catalog{products: products, byID: byID}
}

// Products returns all products in load order.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// ByID looks up a single product by its identifier.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByCategory returns the products in the given category, load order
// preserved.
func (c *Catalog) ByCategory(category string) []domain.Product {
	var matched []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
