package catalog

import "SisStore/internal/product"

// Fallback is the built-in sample catalog shown when the very first fetch
// fails with nothing cached, so the grid is never left empty.
func Fallback() []product.Product {
	return []product.Product{
		{
			ID:       "e001",
			Name:     "Digital Thermometer",
			Code:     "E001",
			Price:    7.5,
			Category: "Diagnostics",
			Desc:     "Thermometer.",
		},
		{
			ID:       "e003",
			Name:     "Pulse Oximeter",
			Code:     "E003",
			Price:    29,
			Category: "Diagnostics",
			Desc:     "SpO₂ monitor.",
		},
	}
}
