package catalog

import "github.com/sheikh-saqib/fitcoin-ledger/internal/models"

var swadeshiMarketplace = []models.CatalogItem{
	{ID: 1, Name: "Organic Protein Powder", Brand: "Swadeshi Nutrition", Points: 500, Discount: "20%", OriginalPrice: 1200, Category: "nutrition"},
	{ID: 2, Name: "Ayurvedic Energy Drink", Brand: "Desi Wellness", Points: 300, Discount: "15%", OriginalPrice: 150, Category: "beverages"},
	{ID: 3, Name: "Handcrafted Yoga Mat", Brand: "Indian Crafts Co.", Points: 800, Discount: "25%", OriginalPrice: 2000, Category: "equipment"},
	{ID: 4, Name: "Traditional Sports Shoes", Brand: "Bharat Footwear", Points: 1200, Discount: "30%", OriginalPrice: 3000, Category: "footwear"},
	{ID: 5, Name: "Herbal Recovery Oil", Brand: "Ayurveda Plus", Points: 400, Discount: "18%", OriginalPrice: 800, Category: "wellness"},
	{ID: 6, Name: "Indian Sports Jersey", Brand: "Tricolor Sports", Points: 600, Discount: "22%", OriginalPrice: 1500, Category: "apparel"},
}
