package client

import (
	"context"
	"fmt"
	"net/url"
)

const apiPrefix = "/api/v1"

// CatalogClient is a typed client for the catalog HTTP API.
type CatalogClient struct {
	httpClient *HttpClient
}

func NewCatalogClient(baseURL, token string) *CatalogClient {
	return &CatalogClient{httpClient: NewHttpClient(baseURL, token)}
}

func (c *CatalogClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *CatalogClient) ListStates(ctx context.Context, names, initials []string) (*Response, error) {
	q := url.Values{}
	for _, n := range names {
		q.Add("name", n)
	}
	for _, i := range initials {
		q.Add("initials", i)
	}
	return c.httpClient.GET(ctx, withQuery(apiPrefix+"/states", q))
}

func (c *CatalogClient) GetState(ctx context.Context, stateID string) (*Response, error) {
	return c.httpClient.GET(ctx, apiPrefix+"/states/"+url.PathEscape(stateID))
}

func (c *CatalogClient) ListCities(ctx context.Context, stateID, name string) (*Response, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	return c.httpClient.GET(ctx, withQuery(apiPrefix+"/states/"+url.PathEscape(stateID)+"/cities", q))
}

func (c *CatalogClient) CreateCity(ctx context.Context, stateID, name string) (*Response, error) {
	path := apiPrefix + "/states/" + url.PathEscape(stateID) + "/cities"
	return c.httpClient.POST(ctx, path, map[string]string{"name": name})
}

func (c *CatalogClient) CreateAddress(ctx context.Context, stateID, cityID string, body any) (*Response, error) {
	path := fmt.Sprintf("%s/states/%s/cities/%s/addresses", apiPrefix, url.PathEscape(stateID), url.PathEscape(cityID))
	return c.httpClient.POST(ctx, path, body)
}

func (c *CatalogClient) ListAddresses(ctx context.Context, filter url.Values) (*Response, error) {
	return c.httpClient.GET(ctx, withQuery(apiPrefix+"/addresses", filter))
}

func (c *CatalogClient) UpdateAddress(ctx context.Context, addressID string, body any) (*Response, error) {
	return c.httpClient.PATCH(ctx, apiPrefix+"/addresses/"+url.PathEscape(addressID), body)
}

func (c *CatalogClient) DeleteAddress(ctx context.Context, addressID string) (*Response, error) {
	return c.httpClient.DELETE(ctx, apiPrefix+"/addresses/"+url.PathEscape(addressID))
}

func (c *CatalogClient) CreateCategory(ctx context.Context, name string) (*Response, error) {
	return c.httpClient.POST(ctx, apiPrefix+"/products/category", map[string]string{"name": name})
}

func (c *CatalogClient) ListCategories(ctx context.Context, name string) (*Response, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	return c.httpClient.GET(ctx, withQuery(apiPrefix+"/products/category", q))
}

func (c *CatalogClient) GetProduct(ctx context.Context, productID string) (*Response, error) {
	return c.httpClient.GET(ctx, apiPrefix+"/products/id/"+url.PathEscape(productID))
}

func (c *CatalogClient) UpdateLineItemPrice(ctx context.Context, saleID, productID, price string) (*Response, error) {
	path := fmt.Sprintf("%s/sales/%s/products/%s/price/%s", apiPrefix, url.PathEscape(saleID), url.PathEscape(productID), url.PathEscape(price))
	return c.httpClient.PATCH(ctx, path, nil)
}

func (c *CatalogClient) UpdateLineItemAmount(ctx context.Context, saleID, productID, amount string) (*Response, error) {
	path := fmt.Sprintf("%s/sales/%s/products/%s/amount/%s", apiPrefix, url.PathEscape(saleID), url.PathEscape(productID), url.PathEscape(amount))
	return c.httpClient.PATCH(ctx, path, nil)
}

func (c *CatalogClient) CreatePermission(ctx context.Context, description string) (*Response, error) {
	return c.httpClient.POST(ctx, apiPrefix+"/permissions", map[string]string{"description": description})
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
