package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			rotation := Rotation{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

			if err := InitWithRotation(tt.level, rotation, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Log.Debug("debug message")
			Log.Info("info message")
			Log.Warn("warn message")
			Log.Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			output := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(output, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(output, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNew_NamesLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithRotation("info", DefaultRotation(logFile), false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	New("render").Info("tile done", zap.Int("tile", 3))
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	output := string(content)
	if !strings.Contains(output, `"logger":"render"`) {
		t.Errorf("expected logger name in output, got %s", output)
	}
	if !strings.Contains(output, `"tile":3`) {
		t.Errorf("expected structured field in output, got %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		lvl, err := ParseLevel(tt.input)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", tt.input, err)
		}
		if lvl != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, lvl, tt.expected)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := InitWithRotation("loud", Rotation{}, false); err == nil {
		t.Error("expected Init to reject unknown level")
	}
}

func TestDefaultRotation(t *testing.T) {
	rotation := DefaultRotation("/tmp/raycore.log")

	if rotation.Path != "/tmp/raycore.log" {
		t.Errorf("expected path /tmp/raycore.log, got %s", rotation.Path)
	}
	if rotation.MaxSizeMB != 20 || rotation.MaxBackups != 3 || rotation.MaxAgeDays != 14 {
		t.Errorf("unexpected rotation limits %+v", rotation)
	}
	if !rotation.Compress {
		t.Error("expected Compress to be true")
	}
}
