package tui

import (
	"testing"

	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/cache"
	"github.com/foliodash/folio/internal/config"
)

func profileFixture() config.Profile {
	return config.Profile{
		Name:     "Jane Doe",
		Title:    "Software Engineer",
		Bio:      "Builds dashboards and watches index funds grow.",
		Email:    "jane@example.com",
		GitHub:   "github.com/janedoe",
		LinkedIn: "linkedin.com/in/janedoe",
	}
}

func newModelForTest(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Profile = profileFixture()
	client := api.NewClient("http://localhost:0", "")
	store := cache.NewStore(t.TempDir())
	return New(cfg, client, store, discardLogger())
}
