package config_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"gitlab.com/dirk.krummacker/youthere/internal/config"
)

// clearEnv unsets all variables read by the config for the duration of the test.
func clearEnv(c *qt.C) {
	for _, name := range []string{
		"PORT", "GIN_LOGGING", "LOG_LEVEL", "CONTACTS_DOCUMENTS_DIR", "CONTACTS_CACHES_DIR",
		"CONTACTS_URL", "DBUSER", "DBPWD", "DBHOST", "DBNAME",
	} {
		c.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	c := qt.New(t)
	clearEnv(c)

	cfg, err := config.Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Port, qt.Equals, 8080)
	c.Assert(cfg.GinLogging, qt.Equals, "on")
	c.Assert(cfg.LogLevel, qt.Equals, "info")
	c.Assert(filepath.Base(cfg.DocumentsDir), qt.Equals, "documents")
	c.Assert(filepath.Base(cfg.CachesDir), qt.Equals, "caches")
	c.Assert(cfg.ServiceURL, qt.Equals, "http://localhost:8080")
	c.Assert(cfg.Database.Host, qt.Equals, "localhost")
	c.Assert(cfg.Database.Name, qt.Equals, "test")
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	c := qt.New(t)
	clearEnv(c)
	c.Setenv("PORT", "9090")

	cfg, err := config.Load("/nonexistent/youthere.yaml")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Port, qt.Equals, 9090)
}

func TestLoad_FileAndEnv(t *testing.T) {
	c := qt.New(t)
	clearEnv(c)

	path := filepath.Join(c.TempDir(), "youthere.yaml")
	yaml := "port: 8181\n" +
		"gin_logging: \"off\"\n" +
		"documents_dir: /srv/youthere/documents\n" +
		"database:\n" +
		"  user: dirk\n" +
		"  host: db.example.com\n"
	c.Assert(os.WriteFile(path, []byte(yaml), 0o600), qt.IsNil)

	tests := []struct {
		name     string
		env      map[string]string
		wantPort int
		wantUser string
		wantHost string
	}{
		{
			name:     "file values",
			wantPort: 8181,
			wantUser: "dirk",
			wantHost: "db.example.com",
		},
		{
			name:     "env overrides file",
			env:      map[string]string{"PORT": "8282", "DBUSER": "pavla"},
			wantPort: 8282,
			wantUser: "pavla",
			wantHost: "db.example.com",
		},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			for k, v := range tt.env {
				c.Setenv(k, v)
			}
			cfg, err := config.Load(path)
			c.Assert(err, qt.IsNil)
			c.Assert(cfg.Port, qt.Equals, tt.wantPort)
			c.Assert(cfg.GinLogging, qt.Equals, "off")
			c.Assert(cfg.DocumentsDir, qt.Equals, "/srv/youthere/documents")
			c.Assert(cfg.Database.User, qt.Equals, tt.wantUser)
			c.Assert(cfg.Database.Host, qt.Equals, tt.wantHost)
		})
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	c := qt.New(t)
	clearEnv(c)

	path := filepath.Join(c.TempDir(), "youthere.yaml")
	c.Assert(os.WriteFile(path, []byte("port: [unterminated\n"), 0o600), qt.IsNil)

	_, err := config.Load(path)
	c.Assert(err, qt.IsNotNil)
}
