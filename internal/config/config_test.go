package config_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/sebas/internal/config"
)

func TestDefault_HappyPath(t *testing.T) {
	c := qt.New(t)
	cfg := config.Default()
	c.Assert(cfg, qt.IsNotNil)
	c.Assert(cfg.StoreDir, qt.Equals, ".sebas")
	c.Assert(cfg.DefaultGroup, qt.Equals, "miscellaneous")
	c.Assert(cfg.Inject, qt.Equals, "auto")
	c.Assert(cfg.Confirm, qt.IsTrue)
	c.Assert(cfg.LogLevel, qt.Equals, "warn")
	c.Assert(cfg.Usage.Enabled, qt.IsTrue)
}

func TestLoad_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("non-existent file returns defaults without error", func(c *qt.C) {
		cfg, err := config.Load("/nonexistent/config.yaml")
		c.Assert(err, qt.IsNil)
		c.Assert(cfg, qt.DeepEquals, config.Default())
	})

	tests := []struct {
		name         string
		yaml         string
		wantStoreDir string
		wantGroup    string
		wantInject   string
		wantConfirm  bool
		wantUsage    bool
	}{
		{
			name:         "all keys override defaults",
			yaml:         "store_dir: .bookmarks\ndefault_group: misc\ninject: print\nconfirm: false\nusage:\n  enabled: false\n",
			wantStoreDir: ".bookmarks",
			wantGroup:    "misc",
			wantInject:   "print",
			wantConfirm:  false,
			wantUsage:    false,
		},
		{
			name:         "partial file keeps other defaults",
			yaml:         "inject: tiocsti\n",
			wantStoreDir: ".sebas",
			wantGroup:    "miscellaneous",
			wantInject:   "tiocsti",
			wantConfirm:  true,
			wantUsage:    true,
		},
		{
			name:         "unknown inject mode falls back to auto",
			yaml:         "inject: telepathy\n",
			wantStoreDir: ".sebas",
			wantGroup:    "miscellaneous",
			wantInject:   "auto",
			wantConfirm:  true,
			wantUsage:    true,
		},
		{
			name:         "empty store_dir keeps the default marker",
			yaml:         "store_dir: \"\"\n",
			wantStoreDir: ".sebas",
			wantGroup:    "miscellaneous",
			wantInject:   "auto",
			wantConfirm:  true,
			wantUsage:    true,
		},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			c.Assert(os.WriteFile(path, []byte(tt.yaml), 0o600), qt.IsNil)

			cfg, err := config.Load(path)
			c.Assert(err, qt.IsNil)
			c.Assert(cfg.StoreDir, qt.Equals, tt.wantStoreDir)
			c.Assert(cfg.DefaultGroup, qt.Equals, tt.wantGroup)
			c.Assert(cfg.Inject, qt.Equals, tt.wantInject)
			c.Assert(cfg.Confirm, qt.Equals, tt.wantConfirm)
			c.Assert(cfg.Usage.Enabled, qt.Equals, tt.wantUsage)
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	c := qt.New(t)

	t.Setenv("SEBAS_DEFAULT_GROUP", "fromenv")
	t.Setenv("SEBAS_USAGE_ENABLED", "false")

	path := filepath.Join(t.TempDir(), "config.yaml")
	c.Assert(os.WriteFile(path, []byte("default_group: fromfile\n"), 0o600), qt.IsNil)

	cfg, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DefaultGroup, qt.Equals, "fromenv")
	c.Assert(cfg.Usage.Enabled, qt.IsFalse)
}

func TestLoad_FailurePath(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	c.Assert(os.WriteFile(path, []byte("store_dir: [unterminated\n"), 0o600), qt.IsNil)

	_, err := config.Load(path)
	c.Assert(err, qt.IsNotNil)
}

func TestResolveHome_EnvOverride(t *testing.T) {
	c := qt.New(t)

	tmp := t.TempDir()
	t.Setenv("SEBAS_HOME", tmp)

	path, source := config.ResolveHome()
	c.Assert(source, qt.Equals, "env")
	c.Assert(path, qt.Equals, tmp)
}

func TestPersistedHome_HappyPath(t *testing.T) {
	c := qt.New(t)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("SEBAS_HOME", "")
	target := filepath.Join(t.TempDir(), "sebas-home")

	_, ok, err := config.GetPersistedHome()
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)

	got, err := config.SetPersistedHome(target)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, target)

	path, source := config.ResolveHome()
	c.Assert(source, qt.Equals, "config")
	c.Assert(path, qt.Equals, target)

	changed, err := config.ClearPersistedHome()
	c.Assert(err, qt.IsNil)
	c.Assert(changed, qt.IsTrue)

	_, source = config.ResolveHome()
	c.Assert(source, qt.Equals, "default")
}
