package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/volunteerhub/backend/config"
	gqlschema "github.com/volunteerhub/backend/graphql"
	"github.com/volunteerhub/backend/internal/policy"
	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/model"
	"github.com/volunteerhub/backend/restapi"
	"github.com/volunteerhub/backend/restapi/modules/auth"
)

type testEnv struct {
	app   *fiber.App
	store *store.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.SetJWTSecret("test-secret")

	st := store.NewMemoryStore()
	pol := policy.New()
	orgs := services.NewOrganizationService(st, pol, zap.NewNop(), nil)
	vols := services.NewVolunteerService(st, pol, zap.NewNop(), nil)

	schema, err := gqlschema.CreateSchema(orgs, vols)
	require.NoError(t, err)

	app := NewFiberApp(restapi.Deps{
		Store:         st,
		Organizations: orgs,
		Volunteers:    vols,
		Schema:        schema,
		Config:        config.Config{},
	})
	return &testEnv{app: app, store: st}
}

// tokenFor mints a session token for an actor without going through login
func tokenFor(t *testing.T, role model.Role, orgID string) string {
	t.Helper()
	user := &model.User{Key: "user-" + role, Email: role + "@example.org", Role: role, OrgID: orgID, IsActive: true}
	token, err := auth.GenerateJWT(user)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decodeBody(t, resp)["status"])
}

func TestUnknownRouteCodeMatchesStatus(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/no/such/route", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestGuestsAreRejected(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/organizations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.NotEmpty(t, body["message"])
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	hash, err := auth.HashPassword("hunter2employed")
	require.NoError(t, err)
	user := model.NewUser("admin@example.org", model.RoleAdmin)
	user.PasswordHash = hash
	require.NoError(t, env.store.Create(context.Background(), store.CollectionUsers, user, nil))

	resp := env.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "admin@example.org", "password": "hunter2employed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp = env.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody(t, resp)
	assert.Equal(t, "admin@example.org", me["email"])
	assert.Empty(t, me["password_hash"])
}

func TestOrganizationLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	creator := tokenFor(t, model.RoleAdmin, "bootstrap")

	// Validation failure carries per-field details
	resp := env.request(t, http.MethodPost, "/api/v1/organizations", creator, fiber.Map{
		"name": "ab", "slug": "Bad Slug!",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.NotEmpty(t, body["details"])

	resp = env.request(t, http.MethodPost, "/api/v1/organizations", creator, fiber.Map{
		"name": "Helping Hands", "slug": "helping-hands", "contact_email": "info@helpinghands.org",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	orgID, _ := created["_key"].(string)
	require.NotEmpty(t, orgID)

	member := tokenFor(t, model.RoleAdmin, orgID)
	outsider := tokenFor(t, model.RoleAdmin, "another-org")

	resp = env.request(t, http.MethodGet, "/api/v1/organizations/"+orgID, outsider, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/organizations/"+orgID, member, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "helping-hands", decodeBody(t, resp)["slug"])

	resp = env.request(t, http.MethodPatch, "/api/v1/organizations/"+orgID, member, fiber.Map{
		"description": "Neighbourhood support network",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/organizations/"+orgID+"/summary", member, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody(t, resp)
	assert.Equal(t, float64(0), summary["total_volunteers"])

	resp = env.request(t, http.MethodDelete, "/api/v1/organizations/"+orgID, member, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/organizations/"+orgID, member, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVolunteerLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	creator := tokenFor(t, model.RoleAdmin, "bootstrap")

	resp := env.request(t, http.MethodPost, "/api/v1/organizations", creator, fiber.Map{
		"name": "Food Bank", "slug": "food-bank",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orgID, _ := decodeBody(t, resp)["_key"].(string)
	require.NotEmpty(t, orgID)

	manager := tokenFor(t, model.RoleManager, orgID)

	resp = env.request(t, http.MethodPost, "/api/v1/volunteers", manager, fiber.Map{
		"organization_id": orgID,
		"first_name":      "Ada",
		"last_name":       "Lovelace",
		"email":           "ada@example.org",
		"skills":          []string{"driving"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	volID, _ := decodeBody(t, resp)["_key"].(string)
	require.NotEmpty(t, volID)

	resp = env.request(t, http.MethodGet, "/api/v1/volunteers?skills=driving", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody(t, resp)
	assert.Equal(t, float64(1), list["total"])

	resp = env.request(t, http.MethodPatch, "/api/v1/volunteers/"+volID, manager, fiber.Map{
		"status": "inactive",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "inactive", decodeBody(t, resp)["status"])

	viewer := tokenFor(t, model.RoleViewer, orgID)
	resp = env.request(t, http.MethodDelete, "/api/v1/volunteers/"+volID, viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/v1/volunteers/"+volID, manager, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateEndpointIsRateLimited(t *testing.T) {
	env := newTestEnv(t)
	creator := tokenFor(t, model.RoleAdmin, "bootstrap")

	var last int
	for i := 0; i < 11; i++ {
		resp := env.request(t, http.MethodPost, "/api/v1/organizations", creator, fiber.Map{
			"name": fmt.Sprintf("Org %02d", i), "slug": fmt.Sprintf("org-%02d", i),
		})
		last = resp.StatusCode
		resp.Body.Close()
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestGraphQLDirectoryQuery(t *testing.T) {
	env := newTestEnv(t)
	creator := tokenFor(t, model.RoleAdmin, "bootstrap")

	resp := env.request(t, http.MethodPost, "/api/v1/organizations", creator, fiber.Map{
		"name": "Helping Hands", "slug": "helping-hands",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/v1/graphql", creator, fiber.Map{
		"query": `{ organizations(search: "helping") { total data { name slug } } }`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Nil(t, body["errors"])
	data := body["data"].(map[string]interface{})
	page := data["organizations"].(map[string]interface{})
	assert.Equal(t, float64(1), page["total"])
}
