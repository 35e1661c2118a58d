package adapters

import "time"

var mockCatalogEpoch = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

func dollars(v float64) *float64 {
	return &v
}

func mockCatalog() []Product {
	day := func(n int) time.Time {
		return mockCatalogEpoch.Add(time.Duration(n) * 24 * time.Hour)
	}

	return []Product{
		{
			ID:                "prod_001",
			ExternalID:        "mock-001",
			SKU:               "TSHIRT-CLASSIC",
			Title:             "Classic Cotton T-Shirt",
			Description:       "Heavyweight organic cotton tee with a relaxed fit.",
			Price:             24.99,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/tshirt-classic.jpg", Alt: "Classic Cotton T-Shirt"}},
			InventoryQuantity: 120,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Apparel",
			Vendor:            "Northwind Basics",
			Tags:              []string{"apparel", "cotton", "t-shirt"},
			Variants: []Variant{
				{ID: "var_001_s", SKU: "TSHIRT-CLASSIC-S", Title: "Small", Price: 24.99, InventoryQuantity: 40},
				{ID: "var_001_m", SKU: "TSHIRT-CLASSIC-M", Title: "Medium", Price: 24.99, InventoryQuantity: 50},
				{ID: "var_001_l", SKU: "TSHIRT-CLASSIC-L", Title: "Large", Price: 24.99, InventoryQuantity: 30},
			},
			Status:    ProductStatusActive,
			CreatedAt: day(0),
			UpdatedAt: day(10),
		},
		{
			ID:                "prod_002",
			ExternalID:        "mock-002",
			SKU:               "SHOE-TRAIL",
			Title:             "Trail Running Shoes",
			Description:       "Lightweight trail shoes with a grippy lug sole.",
			Price:             89.99,
			CompareAtPrice:    dollars(119.99),
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/shoe-trail.jpg", Alt: "Trail Running Shoes"}},
			InventoryQuantity: 35,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Footwear",
			Vendor:            "Ridgeline",
			Tags:              []string{"running", "outdoor", "shoes"},
			Status:            ProductStatusActive,
			CreatedAt:         day(1),
			UpdatedAt:         day(12),
		},
		{
			ID:                "prod_003",
			ExternalID:        "mock-003",
			SKU:               "BOTTLE-INS-750",
			Title:             "Insulated Water Bottle",
			Description:       "750ml stainless steel bottle, keeps drinks cold for 24 hours.",
			Price:             19.99,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/bottle.jpg", Alt: "Insulated Water Bottle"}},
			InventoryQuantity: 200,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Accessories",
			Vendor:            "Ridgeline",
			Tags:              []string{"outdoor", "hydration"},
			Status:            ProductStatusActive,
			CreatedAt:         day(2),
			UpdatedAt:         day(2),
		},
		{
			ID:                "prod_004",
			ExternalID:        "mock-004",
			SKU:               "BEANIE-MERINO",
			Title:             "Merino Wool Beanie",
			Description:       "Soft merino beanie for cold mornings.",
			Price:             29.99,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/beanie.jpg", Alt: "Merino Wool Beanie"}},
			InventoryQuantity: 4,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Apparel",
			Vendor:            "Northwind Basics",
			Tags:              []string{"apparel", "wool", "winter"},
			Status:            ProductStatusActive,
			CreatedAt:         day(3),
			UpdatedAt:         day(15),
		},
		{
			ID:                "prod_005",
			ExternalID:        "mock-005",
			SKU:               "JACKET-RAIN",
			Title:             "Waterproof Rain Jacket",
			Description:       "Packable three-layer shell with taped seams.",
			Price:             149.00,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/jacket.jpg", Alt: "Waterproof Rain Jacket"}},
			InventoryQuantity: 0,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Outerwear",
			Vendor:            "Ridgeline",
			Tags:              []string{"outdoor", "rain"},
			Status:            ProductStatusActive,
			CreatedAt:         day(4),
			UpdatedAt:         day(4),
		},
		{
			ID:                "prod_006",
			ExternalID:        "mock-006",
			SKU:               "COFFEE-ORG-1KG",
			Title:             "Organic Coffee Beans 1kg",
			Description:       "Medium roast single origin beans from Huila, Colombia.",
			Price:             32.50,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/coffee.jpg", Alt: "Organic Coffee Beans"}},
			InventoryQuantity: 60,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Grocery",
			Vendor:            "Bean & Leaf",
			Tags:              []string{"coffee", "organic"},
			Status:            ProductStatusActive,
			CreatedAt:         day(5),
			UpdatedAt:         day(20),
		},
		{
			ID:                "prod_007",
			ExternalID:        "mock-007",
			SKU:               "BAG-WEEKENDER",
			Title:             "Canvas Weekender Bag",
			Description:       "Waxed canvas duffel with leather handles. Made to order.",
			Price:             119.00,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/weekender.jpg", Alt: "Canvas Weekender Bag"}},
			InventoryQuantity: 0,
			InventoryPolicy:   InventoryPolicyContinue,
			TrackInventory:    true,
			ProductType:       "Bags",
			Vendor:            "Northwind Basics",
			Tags:              []string{"travel", "bags"},
			Status:            ProductStatusActive,
			CreatedAt:         day(6),
			UpdatedAt:         day(6),
		},
		{
			ID:                "prod_008",
			ExternalID:        "mock-008",
			SKU:               "SUN-BAMBOO",
			Title:             "Bamboo Sunglasses",
			Description:       "Polarized lenses in a lightweight bamboo frame.",
			Price:             45.00,
			Currency:          "USD",
			Images:            []Image{{URL: "https://images.example.com/sunglasses.jpg", Alt: "Bamboo Sunglasses"}},
			InventoryQuantity: 18,
			InventoryPolicy:   InventoryPolicyDeny,
			TrackInventory:    true,
			ProductType:       "Accessories",
			Vendor:            "Coastline",
			Tags:              []string{"summer", "eyewear"},
			Status:            ProductStatusActive,
			CreatedAt:         day(7),
			UpdatedAt:         day(7),
		},
	}
}

func mockShippingMethods() []ShippingMethod {
	return []ShippingMethod{
		{ID: "standard", Title: "Standard Shipping", Description: "Delivered in 5-7 business days", Carrier: "USPS", Price: 5.00, Currency: "USD", EstimatedDays: "5-7"},
		{ID: "express", Title: "Express Shipping", Description: "Delivered in 2-3 business days", Carrier: "UPS", Price: 15.00, Currency: "USD", EstimatedDays: "2-3"},
		{ID: "overnight", Title: "Overnight Shipping", Description: "Next business day", Carrier: "FedEx", Price: 29.99, Currency: "USD", EstimatedDays: "1"},
	}
}
