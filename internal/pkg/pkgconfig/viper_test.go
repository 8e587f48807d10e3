package pkgconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml",
		"int: 42\nbool: true\nfloat: 3.14\nstring: hi\nbinary: aGVsbG8=\narray: a, b,c\nmap: k1:v1,k2:v2\nttl: 30m\n")

	cfg, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	var _ Config = cfg

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetFloat("float"); got != 3.14 {
		t.Fatalf("GetFloat: expected 3.14, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := string(cfg.GetBinary("binary")); got != "hello" {
		t.Fatalf("GetBinary: expected hello, got %q", got)
	}
	if got := cfg.GetArray("array"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GetArray: unexpected value: %#v", got)
	}
	if got := cfg.GetArray("missing"); got != nil {
		t.Fatalf("GetArray: expected nil for missing key, got %#v", got)
	}
	if got := cfg.GetMap("map"); !reflect.DeepEqual(got, map[string]string{"k1": "v1", "k2": "v2"}) {
		t.Fatalf("GetMap: unexpected value: %#v", got)
	}
	if got := cfg.GetDuration("ttl"); got != 30*time.Minute {
		t.Fatalf("GetDuration: expected 30m, got %v", got)
	}
}

func TestViperEnvOverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "dashboard:\n  upload:\n    max_files: 5\n")
	envFile := writeFile(t, dir, ".env", "SHEETBOARD_TEST_FROM_DOTENV=yes\n")

	t.Setenv("DASHBOARD_UPLOAD_MAX_FILES", "9")
	t.Cleanup(func() { _ = os.Unsetenv("SHEETBOARD_TEST_FROM_DOTENV") })

	cfg, err := NewViper(path,
		WithDefaults(map[string]any{"dashboard.session.ttl": "1h"}),
		WithDotEnv(envFile, filepath.Join(dir, "missing.env")),
	)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetInt("dashboard.upload.max_files"); got != 9 {
		t.Fatalf("expected env override 9, got %d", got)
	}
	if got := cfg.GetDuration("dashboard.session.ttl"); got != time.Hour {
		t.Fatalf("expected default 1h, got %v", got)
	}
	if got := os.Getenv("SHEETBOARD_TEST_FROM_DOTENV"); got != "yes" {
		t.Fatalf("expected dotenv value loaded, got %q", got)
	}
}

func TestViperGetBinaryInvalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "binary: not-base64\n")
	cfg, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetBinary("binary"); got != nil {
		t.Fatalf("expected nil for invalid base64, got %v", got)
	}
}

func TestViperMissingFile(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
