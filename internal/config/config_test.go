package config

import "testing"

func TestDefaultECANConfig(t *testing.T) {
	cfg := DefaultECANConfig()
	if cfg.InitialSTIFunds <= 0 || cfg.InitialLTIFunds <= 0 {
		t.Error("default funds should be positive")
	}
	if cfg.AFBoundary <= 0 {
		t.Error("default attentional-focus boundary should be positive")
	}
}

func TestLoadWithNoEnvFileReturnsDefaults(t *testing.T) {
	settings := Load("")
	if settings.ECAN != DefaultECANConfig() {
		t.Error("Load with no overrides should return the default ECAN config")
	}
	if settings.Inference != DefaultInferenceConfig() {
		t.Error("Load with no overrides should return the default inference config")
	}
}

func TestLoadMissingEnvFileIsNotFatal(t *testing.T) {
	// godotenv.Load on a nonexistent path should be swallowed, not panic
	// or otherwise abort Load.
	settings := Load("/nonexistent/path/.env")
	if settings.Matcher != DefaultMatcherConfig() {
		t.Error("a missing .env file should still yield default settings")
	}
}
