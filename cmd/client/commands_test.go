package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atinyakov/tripwise/internal/repository"
	"github.com/atinyakov/tripwise/internal/seed"
	handler "github.com/atinyakov/tripwise/internal/server/handler/http"
	"github.com/atinyakov/tripwise/internal/service"
	"github.com/atinyakov/tripwise/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startServer(t *testing.T) string {
	t.Helper()
	st := store.NewMemoryStore()
	_, err := seed.Initialize(context.Background(), st, time.Now())
	require.NoError(t, err)

	repo := repository.NewSlotRepository(st, nil)
	opts := service.Options{}
	auth := service.NewAuthService(repo, opts)
	h := handler.Handlers{
		Auth:      &handler.AuthHandler{AuthService: auth},
		Catalog:   &handler.CatalogHandler{CatalogService: service.NewCatalogService(repo, opts)},
		Community: &handler.CommunityHandler{CommunityService: service.NewCommunityService(repo, opts), Sessions: auth},
		Planner:   &handler.PlannerHandler{PlannerService: service.NewPlannerService(repo, opts)},
	}
	srv := httptest.NewServer(handler.NewRouter(h, auth, []string{"*"}, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, url, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out)
	root.SetArgs(append(args, "--url", url))
	err := root.Execute()
	return out.String(), err
}

func TestCommands_Catalog(t *testing.T) {
	url := startServer(t)

	out, err := run(t, url, "", "spots", "--region", "Sindh")
	require.NoError(t, err)
	assert.Contains(t, out, "Mohenjo-daro")
	assert.NotContains(t, out, "Hunza")

	out, err = run(t, url, "", "hotels", "--location", "Gwadar")
	require.NoError(t, err)
	assert.Contains(t, out, "Sadaf Resort")

	out, err = run(t, url, "", "cars", "--type", "Van")
	require.NoError(t, err)
	assert.Contains(t, out, "Toyota Hiace")
}

func TestCommands_AdminPriceChange(t *testing.T) {
	url := startServer(t)

	_, err := run(t, url, "", "set-hotel-price", "h4", "9000")
	assert.ErrorContains(t, err, "401")

	out, err := run(t, url, "", "login", "admin@tripwise.pk", "--admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Admin User (admin)")

	out, err = run(t, url, "", "set-hotel-price", "h4", "9000")
	require.NoError(t, err)
	assert.Contains(t, out, "12000 -> 9000")

	out, err = run(t, url, "", "set-car-price", "c9", "100")
	assert.ErrorContains(t, err, `car "c9" not found`)
	assert.Empty(t, out)

	_, err = run(t, url, "", "set-car-price", "c1", "cheap")
	assert.ErrorContains(t, err, "invalid price")
}

func TestCommands_SessionAndPosts(t *testing.T) {
	url := startServer(t)

	out, err := run(t, url, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	_, err = run(t, url, "", "signup", "Zara", "zara@example.com")
	require.NoError(t, err)

	out, err = run(t, url, "", "post", "Hello", "from", "Swat", "--tag", "Swat Valley")
	require.NoError(t, err)
	assert.Contains(t, out, "as Zara")

	out, err = run(t, url, "Prompted post\n\n", "post")
	require.NoError(t, err)
	assert.Contains(t, out, "What's on your mind?")

	out, err = run(t, url, "", "posts")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Prompted post"), strings.Index(out, "Hello from Swat"))

	_, err = run(t, url, "", "logout")
	require.NoError(t, err)
	out, err = run(t, url, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestCommands_Planner(t *testing.T) {
	url := startServer(t)

	out, err := run(t, url, "", "recommend", "--interests", "beach,sea", "--region", "Balochistan")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Gwadar Port")

	out, err = run(t, url, "", "recommend", "--interests", "skyscrapers")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching destinations")

	out, err = run(t, url, "", "ask", "what", "about", "food?")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapli Kabab")
}

func TestShell(t *testing.T) {
	url := startServer(t)

	input := strings.Join([]string{
		"help",
		"",
		"login traveller@example.com",
		"whoami",
		"bogus",
		"exit",
		"whoami",
	}, "\n") + "\n"
	out, err := run(t, url, input, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Available commands")
	assert.Contains(t, out, "traveller <traveller@example.com> user")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "Bye")
	assert.Equal(t, 1, strings.Count(out, "traveller <"), "commands after exit must not run")
}

func TestShell_QuotedArguments(t *testing.T) {
	url := startServer(t)

	input := strings.Join([]string{
		`spots --region "Khyber Pakhtunkhwa"`,
		`spots --region 'Azad Kashmir'`,
		`spots --region "Northern`,
		"exit",
	}, "\n") + "\n"
	out, err := run(t, url, input, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Swat Valley")
	assert.Contains(t, out, "Neelum Valley")
	assert.NotContains(t, out, "unknown command")
	assert.Equal(t, 1, strings.Count(out, "Error:"), "an unterminated quote is reported")
}

func TestShell_EOF(t *testing.T) {
	url := startServer(t)

	out, err := run(t, url, "whoami", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestNewAPI_UsesTimeoutFlag(t *testing.T) {
	c := &cli{baseURL: "http://example.test/", timeout: time.Minute}

	api := c.newAPI()
	assert.Equal(t, "http://example.test", api.BaseURL)
	assert.Equal(t, time.Minute, api.HTTP.Timeout)
}
