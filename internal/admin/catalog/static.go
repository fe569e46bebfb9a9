package catalog

import (
	"context"
)

// StaticService provides deterministic catalog data suitable for local development and tests.
type StaticService struct {
	services []DisplayedService
	prices   []ServiceCategory
}

// NewStaticService returns a StaticService populated with representative laundry data.
func NewStaticService() *StaticService {
	return &StaticService{
		services: []DisplayedService{
			{ID: "svc-wash", Name: "Wash"},
			{ID: "svc-dry", Name: "Dry"},
			{ID: "svc-fold", Name: "Fold"},
			{ID: "svc-iron", Name: "Iron"},
			{ID: "svc-deliver", Name: "Deliver"},
		},
		prices: []ServiceCategory{
			{
				ID:          "cat-regular",
				Category:    "Regular",
				Description: "Wash, dry and fold",
				Price:       140,
				Unit:        "per load",
			},
			{
				ID:          "cat-premium",
				Category:    "Premium",
				Description: "Wash, dry, fold and iron",
				Price:       180,
				Unit:        "per load",
			},
			{
				ID:          "cat-beddings",
				Category:    "Beddings",
				Description: "Comforters, bed sheets and pillow cases",
				Price:       200,
				Unit:        "per load",
			},
		},
	}
}

// Services returns the configured displayed services.
func (s *StaticService) Services(ctx context.Context, token, shopID string) ([]DisplayedService, error) {
	out := make([]DisplayedService, len(s.services))
	copy(out, s.services)
	return out, nil
}

// Prices returns the configured service categories.
func (s *StaticService) Prices(ctx context.Context, token, shopID string) ([]ServiceCategory, error) {
	out := make([]ServiceCategory, len(s.prices))
	copy(out, s.prices)
	return out, nil
}
