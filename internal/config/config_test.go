package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.ResolveWindowM != 50 {
		t.Errorf("ResolveWindowM = %g, want 50", cfg.ResolveWindowM)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 32<<20)
	}
	if cfg.ThresholdPath != "" {
		t.Errorf("ThresholdPath = %q, want empty", cfg.ThresholdPath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TRACKGEOM_LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("TRACKGEOM_RESOLVE_WINDOW_M", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.ResolveWindowM != 25 {
		t.Errorf("ResolveWindowM = %g", cfg.ResolveWindowM)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TRACKGEOM_RESOLVE_WINDOW_M", "-5")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative resolve window")
	}

	t.Setenv("TRACKGEOM_RESOLVE_WINDOW_M", "50")
	t.Setenv("TRACKGEOM_MAX_UPLOAD_BYTES", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric upload cap")
	}
}
