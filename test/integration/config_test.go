package integration

import (
	"path/filepath"
	"testing"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
)

func TestInvalidFixtures(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"malformed-json", "bad-revision", "bad-checksum", "bad-api"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			root := filepath.Join(fixturesDir(), "invalid", name)
			_, _, err := config.LoadProject(root, config.Options{Lookup: config.MapLookup(nil)})
			if err == nil {
				t.Fatalf("expected %s to be rejected", name)
			}
		})
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Parallel()
	cfg, _ := loadFixture(t, "full", map[string]string{
		"NDKPKG_API":         "26",
		"NDKPKG_TARGET_ARCH": "x86_64",
	})

	if cfg.Target.API != 26 || cfg.Target.Arch != "x86_64" {
		t.Errorf("expected x86_64 at API 26, got %s at %d", cfg.Target.Arch, cfg.Target.API)
	}
	if cfg.Revision != "r20" {
		t.Errorf("expected file revision r20 to survive, got %q", cfg.Revision)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Parallel()
	root := filepath.Join(fixturesDir(), "full")
	cfg, _, err := config.LoadProject(root, config.Options{
		Lookup:   config.MapLookup(map[string]string{"NDKPKG_API": "26"}),
		Override: func(c *config.Config) { c.Target.API = 28 },
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Target.API != 28 {
		t.Errorf("expected override API 28, got %d", cfg.Target.API)
	}
}
