package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/matchday/matchday.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origXDG := os.Getenv("XDG_CONFIG_HOME")
			defer func() {
				if origXDG != "" {
					_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
				} else {
					_ = os.Unsetenv("XDG_CONFIG_HOME")
				}
			}()

			if tt.xdgConfig != "" {
				_ = os.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)
			} else {
				_ = os.Unsetenv("XDG_CONFIG_HOME")
			}

			got := GlobalPath()
			if tt.want != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
			} else {
				if !filepath.IsAbs(got) {
					t.Errorf("GlobalPath() should return absolute path, got %v", got)
				}
				if filepath.Base(got) != "matchday.yml" {
					t.Errorf("GlobalPath() should end with matchday.yml, got %v", got)
				}
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	got := ProjectPath()
	want := "matchday.yml"
	if got != want {
		t.Errorf("ProjectPath() = %v, want %v", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Point XDG and cwd at empty temp dirs so no real config leaks in
	tmp := t.TempDir()
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	origWD, _ := os.Getwd()
	defer func() {
		_ = os.Chdir(origWD)
		if origXDG != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()
	_ = os.Setenv("XDG_CONFIG_HOME", tmp)
	_ = os.Chdir(tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BackendURL != "nats://127.0.0.1:4222" {
		t.Errorf("BackendURL default = %q", cfg.BackendURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel default = %q", cfg.LogLevel)
	}
	if cfg.ClubID != "" {
		t.Errorf("ClubID should default empty, got %q", cfg.ClubID)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	origWD, _ := os.Getwd()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("MATCHDAY_BACKEND_URL", "nats://backend.example:4222")
	t.Setenv("MATCHDAY_CLUB_ID", "club-42")
	defer func() { _ = os.Chdir(origWD) }()
	_ = os.Chdir(tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BackendURL != "nats://backend.example:4222" {
		t.Errorf("BackendURL = %q, want env override", cfg.BackendURL)
	}
	if cfg.ClubID != "club-42" {
		t.Errorf("ClubID = %q, want club-42", cfg.ClubID)
	}
}

func TestWriteAndLoadProject(t *testing.T) {
	tmp := t.TempDir()
	origWD, _ := os.Getwd()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	defer func() { _ = os.Chdir(origWD) }()
	_ = os.Chdir(tmp)

	want := &Config{
		BackendURL: "nats://club.example:4222",
		ClubID:     "trailhawks",
		LogLevel:   "debug",
	}
	if err := WriteProject(want); err != nil {
		t.Fatalf("WriteProject() error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BackendURL != want.BackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, want.BackendURL)
	}
	if cfg.ClubID != want.ClubID {
		t.Errorf("ClubID = %q, want %q", cfg.ClubID, want.ClubID)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
