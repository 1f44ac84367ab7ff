package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  WARN,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 log lines with WARN level, got %d", len(lines))
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{Level: ERROR, Format: JSONFormat, Output: &buf})
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output at ERROR level, got %q", buf.String())
	}

	logger.SetLevel(DEBUG)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected debug output after SetLevel, got %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "loader",
	})

	logger.Info("table loaded", map[string]interface{}{
		"path": "USDA_75_23_CPI.csv",
		"rows": 49,
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "table loaded" {
		t.Errorf("Expected message 'table loaded', got %s", entry.Message)
	}
	if entry.Component != "loader" {
		t.Errorf("Expected component 'loader', got %s", entry.Component)
	}
	if entry.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if entry.Fields["path"] != "USDA_75_23_CPI.csv" {
		t.Errorf("Expected field path, got %v", entry.Fields["path"])
	}
	if entry.Fields["rows"] != float64(49) {
		t.Errorf("Expected field rows=49, got %v", entry.Fields["rows"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    TextFormat,
		Output:    &buf,
		Component: "server",
	})

	logger.Info("listening", map[string]interface{}{"port": "8080"})

	output := buf.String()
	for _, want := range []string{"INFO", "server", "listening", "port", "8080"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Error("Expected text output not to be a JSON document")
	}
}

func TestSetFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{Level: INFO, Format: TextFormat, Output: &buf})
	logger.SetFormat(JSONFormat)
	logger.Info("now json")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON after SetFormat: %v", err)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	baseLogger := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "base",
	})

	componentLogger := baseLogger.WithComponent("charts")
	componentLogger.Info("snippet built")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if entry.Component != "charts" {
		t.Errorf("Expected component 'charts', got %s", entry.Component)
	}
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  ERROR,
		Format: JSONFormat,
		Output: &buf,
	})

	testErr := &testError{msg: "test error"}
	logger.Error("operation failed", testErr, map[string]interface{}{
		"operation": "reload",
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if entry.Error != "test error" {
		t.Errorf("Expected error 'test error', got %s", entry.Error)
	}
	if entry.Fields["operation"] != "reload" {
		t.Errorf("Expected operation field 'reload', got %v", entry.Fields["operation"])
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer

	originalLogger := GetGlobalLogger()
	defer SetGlobalLogger(originalLogger)

	SetGlobalLogger(New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "global-test",
	}))

	Info("global info message")
	Warn("global warn message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(lines))
	}

	var entry1 LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry1); err != nil {
		t.Fatalf("Failed to parse first JSON line: %v", err)
	}
	if entry1.Level != "INFO" || entry1.Message != "global info message" {
		t.Errorf("First line incorrect: level=%s, message=%s", entry1.Level, entry1.Message)
	}

	var entry2 LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry2); err != nil {
		t.Fatalf("Failed to parse second JSON line: %v", err)
	}
	if entry2.Level != "WARN" || entry2.Message != "global warn message" {
		t.Errorf("Second line incorrect: level=%s, message=%s", entry2.Level, entry2.Message)
	}
}

func TestComponentHelper(t *testing.T) {
	var buf bytes.Buffer

	originalLogger := GetGlobalLogger()
	defer SetGlobalLogger(originalLogger)
	SetGlobalLogger(New(Config{Level: INFO, Format: JSONFormat, Output: &buf}))

	Component("storage").Info("stored")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Component != "storage" {
		t.Errorf("Expected component 'storage', got %s", entry.Component)
	}
}

func TestFormattedLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Infof("Loaded %d rows from %s", 49, "cpi.csv")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	expected := "Loaded 49 rows from cpi.csv"
	if entry.Message != expected {
		t.Errorf("Expected message '%s', got '%s'", expected, entry.Message)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input  string
		level  LogLevel
		wantOK bool
	}{
		{"DEBUG", DEBUG, true},
		{"debug", DEBUG, true},
		{" info ", INFO, true},
		{"warning", WARN, true},
		{"Error", ERROR, true},
		{"fatal", FATAL, true},
		{"", INFO, false},
		{"verbose", INFO, false},
	}

	for _, tt := range tests {
		level, ok := ParseLogLevel(tt.input)
		if level != tt.level || ok != tt.wantOK {
			t.Errorf("ParseLogLevel(%q) = (%v, %v), want (%v, %v)", tt.input, level, ok, tt.level, tt.wantOK)
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		format      string
		environment string
		want        LogFormat
		wantOK      bool
	}{
		{"json", "", JSONFormat, true},
		{"JSON", "", JSONFormat, true},
		{"text", "production", TextFormat, true},
		{"auto", "development", TextFormat, true},
		{"auto", "", TextFormat, true},
		{"auto", "production", JSONFormat, true},
		{"", "production", JSONFormat, false},
		{"yaml", "", JSONFormat, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogFormat(tt.format, tt.environment)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLogFormat(%q, %q) = (%v, %v), want (%v, %v)", tt.format, tt.environment, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, test := range tests {
		if test.level.String() != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, test.level.String())
		}
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func BenchmarkJSONLogging(b *testing.B) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: &buf,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", map[string]interface{}{
			"iteration": i,
			"benchmark": true,
		})
	}
}

func BenchmarkLevelFiltering(b *testing.B) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  WARN,
		Format: JSONFormat,
		Output: &buf,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("debug message that should be filtered")
	}
}
