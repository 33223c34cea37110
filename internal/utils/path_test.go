package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/tally/tally.db", filepath.Join(home, ".config/tally/tally.db")},
		{"/tmp/tally.db", "/tmp/tally.db"},
		{"relative/tally.json", "relative/tally.json"},
		{"~other/tally.db", "~other/tally.db"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	def, err := DefaultConfigDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		config string
		want   string
	}{
		{"", def},
		{"postgres://tally@localhost/tally", def},
		{"host=localhost dbname=tally", def},
		{"/data/tally/tally.db", "/data/tally"},
		{"/data/export.json", "/data"},
	}
	for _, tt := range tests {
		got, err := ConfigDir(tt.config)
		if err != nil {
			t.Fatalf("ConfigDir(%q) error: %v", tt.config, err)
		}
		if got != tt.want {
			t.Errorf("ConfigDir(%q) = %q, want %q", tt.config, got, tt.want)
		}
	}
}

func TestIsPostgres(t *testing.T) {
	tests := []struct {
		config string
		want   bool
	}{
		{"postgres://localhost/tally", true},
		{"postgresql://localhost/tally", true},
		{"host=localhost user=tally", true},
		{"~/.config/tally/tally.db", false},
		{"tally.json", false},
	}
	for _, tt := range tests {
		if got := IsPostgres(tt.config); got != tt.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tt.config, got, tt.want)
		}
	}
}
