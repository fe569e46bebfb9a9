package customers

import (
	"context"
	"strings"
)

// StaticService provides deterministic customer data suitable for local development and tests.
type StaticService struct {
	customers []Customer
}

// NewStaticService returns a StaticService populated with representative customers.
func NewStaticService() *StaticService {
	return &StaticService{
		customers: []Customer{
			{ID: "cust-0001", Name: "Maria Santos", Phone: "+63-917-555-0101", Address: "12 Mabini St"},
			{ID: "cust-0002", Name: "Jose Ramirez", Phone: "+63-917-555-0102", Address: "48 Rizal Ave"},
			{ID: "cust-0003", Name: "Ana dela Cruz", Phone: "+63-917-555-0103", Address: "7 Bonifacio Rd"},
		},
	}
}

// Search filters the static customers by id or name substring.
func (s *StaticService) Search(ctx context.Context, token, shopID, query string) ([]Customer, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Customer, len(s.customers))
		copy(out, s.customers)
		return out, nil
	}
	var out []Customer
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.ID), q) || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out, nil
}
