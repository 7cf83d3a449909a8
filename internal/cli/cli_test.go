package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false, false)
	logger.Out = &buf

	logger.Info("hidden %d", 1)
	logger.Debug("hidden %d", 2)
	if buf.Len() != 0 {
		t.Fatalf("quiet logger wrote %q", buf.String())
	}

	logger.Verbose = true
	logger.DebugMode = true
	logger.Info("compiled %s", "a.src")
	logger.Debug("production %s", "factor")
	logger.Warn("careful")
	logger.Error("failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	pattern := regexp.MustCompile(`^\[(INFO|DEBUG|WARN|ERROR)\] \d{2}:\d{2}:\d{2}: `)
	for _, line := range lines {
		if !pattern.MatchString(line) {
			t.Errorf("unexpected log line %q", line)
		}
	}
	if !strings.HasSuffix(lines[0], "compiled a.src") {
		t.Errorf("unexpected info line %q", lines[0])
	}
}

func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Info("x")
	logger.Debug("x")
	logger.Warn("x")
	logger.Error("x")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutDir != "." || cfg.Jobs != 1 || cfg.Color != ColorAuto {
		t.Errorf("defaults = %+v", cfg)
	}

	path := filepath.Join(dir, "plc.json")
	data, _ := json.Marshal(map[string]interface{}{
		"verbose":      true,
		"out_dir":      "build",
		"llvm_version": "15.0.0",
		"jobs":         4,
		"color":        "never",
	})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Verbose || cfg.OutDir != "build" || cfg.LLVMVersion != "15.0.0" || cfg.Jobs != 4 || cfg.Color != ColorNever {
		t.Errorf("loaded = %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"syntax": `{"jobs": `,
		"color":  `{"color": "sometimes"}`,
		"jobs":   `{"jobs": -2}`,
	}
	for name, content := range tests {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plc.json")
	cfg := DefaultConfig()
	cfg.Jobs = 3
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestUseColor(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if cfg.UseColor(f.Fd()) {
		t.Error("a regular file is not a terminal")
	}
	cfg.Color = ColorAlways
	if !cfg.UseColor(f.Fd()) {
		t.Error("always should force color")
	}
	cfg.Color = ColorNever
	if cfg.UseColor(f.Fd()) {
		t.Error("never should disable color")
	}
}

func TestPrintVersion(t *testing.T) {
	info := GetVersionInfo()
	info.Target = "llvm 14.0.0 (typed pointers)"

	var buf bytes.Buffer
	if err := PrintVersion(&buf, "plc", info, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "plc v"+Version+"\n") || !strings.Contains(buf.String(), "Target: llvm 14.0.0") {
		t.Errorf("text output %q", buf.String())
	}

	buf.Reset()
	if err := PrintVersion(&buf, "plc", info, true); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Tool != "plc" || decoded.VersionInfo.Version != Version {
		t.Errorf("json output %+v", decoded)
	}
}
