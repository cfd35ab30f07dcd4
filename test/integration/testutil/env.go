package testutil

import (
	"os"
	"testing"
	"time"

	"marketplace/pkg/client"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"
)

const (
	DefaultHealthCheckTimeout = 30 * time.Second
	tokenTTL                  = 10 * time.Minute
)

// Setup returns a catalog client authorized for every capability. The test is
// skipped when TEST_SERVER_URL is not set.
func Setup(t *testing.T) *client.CatalogClient {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration test")
	}
	secret := os.Getenv("TEST_JWT_SECRET")
	if secret == "" {
		t.Fatal("TEST_JWT_SECRET must match the server's JWT_SECRET")
	}

	token, err := middleware.IssueToken(secret, "integration", []string{
		model.PermissionRead,
		model.PermissionWrite,
		model.PermissionUpdate,
		model.PermissionDelete,
	}, tokenTTL)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	c := client.NewCatalogClient(serverURL, token)
	if err := c.HTTP().WaitForHealthy(DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("server not healthy: %v", err)
	}
	return c
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, client.GetErrorMessage(resp))
	}
}
