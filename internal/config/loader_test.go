package config

import (
	"os"
	"path/filepath"
	"testing"

	"sigd/internal/hooks"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

var wantHook = hooks.Spec{Owner: "mailer", Target: "users", Signal: "deleted", Action: "log", Message: "bye"}

func checkCfg(t *testing.T, cfg Config, addr string) {
	t.Helper()
	if cfg.Addr != addr || cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.MaxBodyBytes != 2048 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Hooks) != 1 || cfg.Hooks[0] != wantHook {
		t.Fatalf("unexpected hooks: %+v", cfg.Hooks)
	}
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: ":9999"
log_level: debug
log_format: json
max_body_bytes: 2048
hooks:
  - owner: mailer
    target: users
    signal: deleted
    action: log
    message: bye
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkCfg(t, cfg, ":9999")
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","log_level":"debug","log_format":"json","max_body_bytes":2048,
"hooks":[{"owner":"mailer","target":"users","signal":"deleted","action":"log","message":"bye"}]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkCfg(t, cfg, ":7070")
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", `addr = ":8081"
log_level = "debug"
log_format = "json"
max_body_bytes = 2048

[[hooks]]
owner = "mailer"
target = "users"
signal = "deleted"
action = "log"
message = "bye"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkCfg(t, cfg, ":8081")
}

func TestLoadHCL(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.hcl", `addr = ":8082"
log_level = "debug"
log_format = "json"
max_body_bytes = 2048

cors {
  enabled = true
  allowed_origins = ["https://example.com"]
}

hook "mailer" {
  target  = "users"
  signal  = "deleted"
  action  = "log"
  message = "bye"
}
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkCfg(t, cfg, ":8082")
	if cfg.CORS == nil || !cfg.CORS.Enabled || len(cfg.CORS.AllowedOrigins) != 1 {
		t.Fatalf("unexpected cors: %+v", cfg.CORS)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.Addr != DefaultAddr || cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat || cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	kept := Config{Addr: ":1", LogLevel: "warn", LogFormat: "json", MaxBodyBytes: 10}.WithDefaults()
	if kept.Addr != ":1" || kept.LogLevel != "warn" || kept.LogFormat != "json" || kept.MaxBodyBytes != 10 {
		t.Fatalf("defaults overwrote values: %+v", kept)
	}
}
