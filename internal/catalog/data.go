package catalog

// Default returns the built-in catalog. The CMS remains the source of truth
// for page content; this data backs the calculator and comparison table when
// no CMS override is available.
func Default() *Catalog {
	return &Catalog{
		GPUs: []GPUModel{
			{
				ID:           "l40s",
				Name:         "L40S (48GB NVIDIA)",
				PricePerHour: 0.87,
				Memory:       "48GB",
				Specs:        "48GB NVIDIA Ada Lovelace",
				VRAM:         "48GB GDDR6",
			},
			{
				ID:           "rtx-pro-6000",
				Name:         "RTX Pro 6000 (48GB)",
				PricePerHour: 1.19,
				Memory:       "48GB",
				Specs:        "48GB GDDR6",
				VRAM:         "48GB GDDR6",
			},
			{
				ID:           "a100",
				Name:         "A100 (80GB)",
				PricePerHour: 1.35,
				Memory:       "80GB",
				Specs:        "80GB HBM2e",
				VRAM:         "80GB HBM2e",
			},
			{
				ID:           "h100-sxm",
				Name:         "H100 SXM (80GB)",
				PricePerHour: 2.25,
				Memory:       "80GB",
				Specs:        "80GB HBM3",
				VRAM:         "80GB HBM3",
			},
			{
				ID:           "h100-nvl",
				Name:         "H100 NVL (94GB)",
				PricePerHour: 2.47,
				Memory:       "94GB",
				Specs:        "94GB HBM3",
				VRAM:         "94GB HBM3",
			},
		},
		Tiers: []ReservationTier{
			{ID: "on-demand", Label: "On-Demand", Duration: "No discount", DiscountPercent: 0, DisplayOrder: 0},
			{ID: "1-week", Label: "1 Week", Duration: "5% off", DiscountPercent: 5, DisplayOrder: 1},
			{ID: "1-month", Label: "1 Month", Duration: "10% off", DiscountPercent: 10, DisplayOrder: 2},
			{ID: "3-months", Label: "3 Months", Duration: "15% off", DiscountPercent: 15, DisplayOrder: 3},
		},
		Comparison: []ComparisonRow{
			{GPU: "H100 NVL", Helios: "2.47", AWS: "5.88", GoogleCloud: "Not listed", Lambda: "2.49", Modal: "3.95"},
			{GPU: "H100 SXM", Helios: "2.25", AWS: "4.40", GoogleCloud: "11.06", Lambda: "2.99", Modal: "3.95"},
			{GPU: "RTX Pro 6000", Helios: "1.19", AWS: "Not listed", GoogleCloud: "Not listed", Lambda: "Not listed", Modal: "Not listed"},
			{GPU: "L40S", Helios: "0.87", AWS: "1.86-2.24", GoogleCloud: "Not listed", Lambda: "Not Available", Modal: "1.95"},
			{GPU: "A100", Helios: "1.35", AWS: "3.67-4.10", GoogleCloud: "3.67", Lambda: "1.29", Modal: "2.50"},
		},
	}
}
