package ecwid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/baigojahanzaib/ajj-sales/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	cfg := config.EcwidConfig{
		BaseURL:  baseURL,
		StoreID:  "12345",
		Token:    "secret_test_token",
		Timeout:  2 * time.Second,
		PageSize: 2,
		Breaker: config.BreakerConfig{
			ConsecutiveFailures: 2,
			ErrorRatePercent:    50,
			OpenTimeout:         time.Minute,
		},
	}
	return NewClient(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func Test_Client_FetchCategories_FollowsPagination(t *testing.T) {
	// given: three categories served two per page
	pages := map[int]string{
		0: `{"total":3,"count":2,"offset":0,"limit":2,"items":[{"id":1,"name":"Winter","enabled":true},{"id":2,"parentId":1,"name":"Jackets","enabled":true}]}`,
		2: `{"total":3,"count":1,"offset":2,"limit":2,"items":[{"id":3,"name":"Summer","enabled":false}]}`,
	}
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/api/v3/12345/categories", r.URL.Path)
		assert.Equal(t, "Bearer secret_test_token", r.Header.Get("Authorization"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		fmt.Fprint(w, pages[offset])
	}))
	defer server.Close()

	// when
	categories, err := newTestClient(server.URL).FetchCategories(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
	require.Len(t, categories, 3)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, int64(1), categories[1].ParentID)
	assert.Equal(t, "Summer", categories[2].Name)
}

func Test_Client_FetchProducts_DecodesWireShape(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/12345/products", r.URL.Path)
		fmt.Fprint(w, `{"total":1,"count":1,"offset":0,"limit":2,"items":[
			{"id":42,"sku":"JACKET-1","name":"Wool Jacket","price":149.99,"enabled":true,"quantity":10,
			 "categoryIds":[7],"ribbon":{"text":"New"},
			 "options":[{"name":"Size","type":"SIZE","choices":[{"text":"XL","priceModifier":10,"priceModifierType":"ABSOLUTE"}]}],
			 "combinations":[{"sku":"JACKET-1-XL","quantity":4,"options":[{"name":"Size","value":"XL"}]}]}
		]}`)
	}))
	defer server.Close()

	// when
	products, err := newTestClient(server.URL).FetchProducts(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "JACKET-1", p.SKU)
	assert.Equal(t, "149.99", p.Price.String())
	require.NotNil(t, p.Ribbon)
	assert.Equal(t, "New", p.Ribbon.Text)
	require.Len(t, p.Options, 1)
	assert.Equal(t, "XL", p.Options[0].Choices[0].Text)
	require.Len(t, p.Combinations, 1)
	assert.Equal(t, int32(4), p.Combinations[0].Quantity)
}

func Test_Client_Get_ClientErrorDoesNotTripBreaker(t *testing.T) {
	// given: an upstream that always answers 404
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such store", http.StatusNotFound)
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// when: more failures than the breaker threshold
	for i := 0; i < 5; i++ {
		_, err := client.FetchCategories(context.Background())
		require.Error(t, err)
	}

	// then: data errors never open the circuit
	_, err := client.FetchCategories(context.Background())
	var se *statusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.code)
}

func Test_Client_Get_ServerErrorsOpenBreaker(t *testing.T) {
	// given: an upstream in a hard outage
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	// when: failures past the consecutive-failure threshold
	for i := 0; i < 5; i++ {
		_, err := client.FetchCategories(context.Background())
		require.Error(t, err)
	}

	// then: the breaker is open and the upstream is no longer hit
	before := requests
	_, err := client.FetchCategories(context.Background())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, before, requests)
}

func Test_Client_FetchCategories_BadPayload(t *testing.T) {
	// given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total": oops`)
	}))
	defer server.Close()

	// when
	_, err := newTestClient(server.URL).FetchCategories(context.Background())

	// then
	require.Error(t, err)
	assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
}
