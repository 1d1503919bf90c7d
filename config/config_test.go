package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if *c != *Default() {
		t.Errorf("missing file should give defaults, got %+v", c)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
# editor settings
save_directory = "`+filepath.ToSlash(dir)+`"
database = ":memory:"
snap_to_line = true
pin_radius = 5.5
min_zoom = 0.25
max_zoom = 8
log_level = "debug"
`)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.SnapToLine || c.PinRadius != 5.5 || c.HitOffset != 2 {
		t.Errorf("unexpected values %+v", c)
	}
	if db, err := c.DatabasePath(); err != nil || db != ":memory:" {
		t.Errorf("database = %q (%v)", db, err)
	}
	if lvl, _ := c.Level(); lvl != slog.LevelDebug {
		t.Errorf("level = %v", lvl)
	}
	if got, err := c.GetSavePath("a.ldr"); err != nil || got != filepath.Join(dir, "a.ldr") {
		t.Errorf("GetSavePath = %q (%v)", got, err)
	}
	if got, _ := c.GetSavePath("/abs/a.ldr"); got != "/abs/a.ldr" {
		t.Errorf("absolute path rewritten to %q", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "pin_radius = = 3", "config"},
		{"unknown key", "pin_radus = 3", "unknown key"},
		{"bad radius", "pin_radius = 0", "pin_radius"},
		{"bad zoom", "min_zoom = 4\nmax_zoom = 2", "zoom range"},
		{"bad level", `log_level = "loud"`, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestGetSavePathWithoutDirectory(t *testing.T) {
	c := Default()
	if got, err := c.GetSavePath("x.ldr"); err != nil || got != "x.ldr" {
		t.Errorf("GetSavePath = %q (%v)", got, err)
	}
}

func TestGetSavePathReportsMkdirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c := Default()
	c.SaveDirectory = filepath.Join(blocker, "diagrams")
	if _, err := c.GetSavePath("x.ldr"); err == nil || !strings.Contains(err.Error(), "save directory") {
		t.Errorf("err = %v, want a save directory error", err)
	}
}
