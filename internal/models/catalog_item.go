package models

// CatalogItem is a marketplace reward priced in points.
type CatalogItem struct {
	ID            int    `json:"id" yaml:"id" validate:"required,gt=0"`
	Name          string `json:"name" yaml:"name" validate:"required"`
	Brand         string `json:"brand" yaml:"brand"`
	Points        int    `json:"points" yaml:"points" validate:"gt=0"`
	Discount      string `json:"discount" yaml:"discount"`
	OriginalPrice int    `json:"originalPrice" yaml:"originalPrice" validate:"gte=0"`
	Category      string `json:"category" yaml:"category"`
}
