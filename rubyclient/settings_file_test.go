package rubyclient

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsFileYAML(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := "model: model.json\nservice: example#Svc\nout: build\nmodule: Acme\ngem: acme_client\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatalf("failed to write fixture settings file: %v", err)
	}
	settings, err := LoadSettingsFile(path)
	if err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	if settings.ModelPath != "model.json" || settings.ServiceId != "example#Svc" ||
		settings.OutDir != "build" || settings.Module != "Acme" || settings.Gem != "acme_client" {
		test.Errorf("unexpected settings: %+v", settings)
	}
}

func TestLoadSettingsFileJSON(test *testing.T) {
	dir := test.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{"model": "m.json", "service": "example#Svc", "out": "out"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatalf("failed to write fixture settings file: %v", err)
	}
	settings, err := LoadSettingsFile(path)
	if err != nil {
		test.Fatalf("unexpected error: %v", err)
	}
	if settings.ModelPath != "m.json" || settings.ServiceId != "example#Svc" || settings.OutDir != "out" {
		test.Errorf("unexpected settings: %+v", settings)
	}
	if settings.Module != "" {
		test.Errorf("expected an unset module to remain empty, got %q", settings.Module)
	}
}

func TestLoadSettingsFileMissingPath(test *testing.T) {
	_, err := LoadSettingsFile(filepath.Join(test.TempDir(), "missing.yaml"))
	if err == nil {
		test.Fatalf("expected an error for a missing settings file")
	}
}

func TestMergeFlagOverridesPrefersNonEmptyFlags(test *testing.T) {
	settings := &Settings{ModelPath: "file-model.json", Module: "FileModule"}
	settings.MergeFlagOverrides("flag-model.json", "example#Svc", "", "", "")
	if settings.ModelPath != "flag-model.json" {
		test.Errorf("expected the flag value to override, got %q", settings.ModelPath)
	}
	if settings.ServiceId != "example#Svc" {
		test.Errorf("expected service id to be set from the flag, got %q", settings.ServiceId)
	}
	if settings.Module != "FileModule" {
		test.Errorf("expected an empty flag to leave the file-provided module untouched, got %q", settings.Module)
	}
}
