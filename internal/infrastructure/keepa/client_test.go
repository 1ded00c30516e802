package keepa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Totanopti/gocomapare-2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestFindSellerASINs_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("domain"))

		var selection finderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&selection))
		assert.Equal(t, []string{"SELLER1"}, selection.SellerIDs)
		assert.Equal(t, 30, selection.PageSize)
		assert.Empty(t, selection.Categories)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(finderResponse{ASINList: []string{"A1", "A2", "A3"}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	asins, err := client.FindSellerASINs(context.Background(), "SELLER1", domain.MarketplaceUS, 30, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "A3"}, asins)
}

func TestFindSellerASINs_CategoryHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var selection finderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&selection))
		assert.Equal(t, []int64{3760911}, selection.Categories)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(finderResponse{ASINList: []string{"A1"}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	categoryID := int64(3760911)

	asins, err := client.FindSellerASINs(context.Background(), "SELLER1", domain.MarketplaceUS, 30, &categoryID)

	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, asins)
}

func TestFindSellerASINs_EmptyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(finderResponse{ASINList: []string{}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	asins, err := client.FindSellerASINs(context.Background(), "SELLER1", domain.MarketplaceUS, 30, nil)

	require.NoError(t, err)
	assert.Empty(t, asins)
}

func TestFindSellerASINs_TruncatesToMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(finderResponse{ASINList: []string{"A1", "A2", "A3", "A4"}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	asins, err := client.FindSellerASINs(context.Background(), "SELLER1", domain.MarketplaceUS, 2, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, asins)
}

func TestFindSellerASINs_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	asins, err := client.FindSellerASINs(context.Background(), "SELLER1", domain.MarketplaceUS, 30, nil)

	assert.Nil(t, asins)
	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
}

func TestFetchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product", r.URL.Path)
		assert.Equal(t, "A1,A2", r.URL.Query().Get("asin"))
		assert.Equal(t, "90", r.URL.Query().Get("stats"))
		assert.Equal(t, "2", r.URL.Query().Get("domain")) // UK

		rating := 42
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(productResponse{Products: []RawProduct{
			{
				ASIN:         "A1",
				Title:        "First",
				Brand:        "Acme",
				RootCategory: 10,
				Rating:       &rating,
				ReviewCount:  7,
				Stats:        RawStats{Current: []int{1500, 0, 0, 42}},
			},
			{
				ASIN:  "A2",
				Title: "Second",
				Brand: "Acme",
			},
		}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	records, err := client.FetchProducts(context.Background(), []string{"A1", "A2"}, domain.MarketplaceUK)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A1", records[0].ASIN)
	assert.Equal(t, 1500, records[0].PriceCents)
	assert.Equal(t, 42, records[0].SalesRank)
	assert.Equal(t, 4.2, records[0].RatingValue)
	assert.Equal(t, "A2", records[1].ASIN)
}

func TestFetchProducts_SkipsMalformedSnapshots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(productResponse{Products: []RawProduct{
			{Title: "no asin"},
			{ASIN: "A2", Title: "ok", Brand: "Acme"},
		}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	records, err := client.FetchProducts(context.Background(), []string{"A1", "A2"}, domain.MarketplaceUS)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A2", records[0].ASIN)
}

func TestFetchProducts_EmptyInputSkipsRemoteCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	records, err := client.FetchProducts(context.Background(), nil, domain.MarketplaceUS)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.False(t, called)
}

func TestFetchProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	records, err := client.FetchProducts(context.Background(), []string{"A1"}, domain.MarketplaceUS)

	assert.Nil(t, records)
	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
}

func TestFetchProducts_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not valid json"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	records, err := client.FetchProducts(context.Background(), []string{"A1"}, domain.MarketplaceUS)

	assert.Nil(t, records)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestCategoryName_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/category", r.URL.Path)
		assert.Equal(t, "3760911", r.URL.Query().Get("category"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categoryResponse{Categories: map[string]categoryEntry{
			"3760911": {Name: "Health & Household"},
		}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	name, err := client.CategoryName(context.Background(), 3760911, domain.MarketplaceUS)

	require.NoError(t, err)
	assert.Equal(t, "Health & Household", name)
}

func TestCategoryName_MissingCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categoryResponse{Categories: map[string]categoryEntry{}})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	name, err := client.CategoryName(context.Background(), 999, domain.MarketplaceUS)

	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestCategoryName_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)

	name, err := client.CategoryName(context.Background(), 999, domain.MarketplaceUS)

	assert.Empty(t, name)
	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	asins, err := client.FindSellerASINs(ctx, "SELLER1", domain.MarketplaceUS, 30, nil)

	assert.Nil(t, asins)
	assert.Error(t, err)
}
