package customers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/customers"
)

func TestHTTPServiceSearch(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/customers/shop-1/maria", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"customers": [
				{"id": "cust-0001", "name": "Maria Santos", "phone": "+63-917-555-0101", "address": "12 Mabini St"}
			]
		}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := customers.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	result, err := svc.Search(context.Background(), "token", "shop-1", "maria")
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "Maria Santos", result[0].Name)
}

func TestHTTPServiceSearchEmptyQueryListsAll(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/customers/shop-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "customers": []}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := customers.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	result, err := svc.Search(context.Background(), "token", "shop-1", "")
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	svc := customers.NewStaticService()

	customer, err := customers.Resolve(context.Background(), svc, "token", "shop-1", "cust-0002")
	require.NoError(t, err)
	require.Equal(t, "Jose Ramirez", customer.Name)

	_, err = customers.Resolve(context.Background(), svc, "token", "shop-1", "cust-9999")
	require.ErrorIs(t, err, customers.ErrNotFound)

	_, err = customers.Resolve(context.Background(), svc, "token", "shop-1", "  ")
	require.ErrorIs(t, err, customers.ErrNotFound)
}
