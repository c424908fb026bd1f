// Package catalog provides the marketplace items that points can be redeemed for.
package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	interfaces "github.com/sheikh-saqib/fitcoin-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fitcoin-ledger/internal/models"
)

var validate = validator.New()

// Static serves a fixed list of items.
type Static struct {
	items []models.CatalogItem
}

// NewStatic validates items and returns a provider for them.
func NewStatic(items []models.CatalogItem) (*Static, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	return &Static{items: append([]models.CatalogItem(nil), items...)}, nil
}

// Default returns the built-in Swadeshi marketplace.
func Default() *Static {
	return &Static{items: append([]models.CatalogItem(nil), swadeshiMarketplace...)}
}

func (s *Static) List(ctx context.Context) ([]models.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.CatalogItem(nil), s.items...), nil
}

type file struct {
	Items []models.CatalogItem `yaml:"items"`
}

// LoadFile reads a YAML catalog of the form:
//
//	items:
//	  - id: 1
//	    name: Organic Protein Powder
//	    points: 500
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("catalog %s has no items", path)
	}
	return NewStatic(f.Items)
}

// Validate checks every item and rejects duplicate ids.
func Validate(items []models.CatalogItem) error {
	seen := make(map[int]bool, len(items))
	for i, it := range items {
		if err := validate.Struct(it); err != nil {
			return fmt.Errorf("catalog item %d: %w", i, err)
		}
		if seen[it.ID] {
			return fmt.Errorf("catalog item %d: duplicate id %d", i, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

var _ interfaces.CatalogProvider = (*Static)(nil)
