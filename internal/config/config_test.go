package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=https://token@api.uptrace.dev?grpc=4317")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "clubraces-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts: %s / %s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.RecalcMaxWorkers != 2 {
		t.Fatalf("unexpected RecalcMaxWorkers: %d", cfg.RecalcMaxWorkers)
	}
	if cfg.HarvestMaxWorkers != 4 {
		t.Fatalf("unexpected HarvestMaxWorkers: %d", cfg.HarvestMaxWorkers)
	}
	if cfg.PromotionWindowDays != 365 || cfg.PromotionWinThreshold != 3 || cfg.PromotionPlaceThreshold != 7 {
		t.Fatalf("unexpected promotion thresholds: %d/%d/%d", cfg.PromotionWindowDays, cfg.PromotionWinThreshold, cfg.PromotionPlaceThreshold)
	}
	if cfg.PromotionTopGrade != "A" {
		t.Fatalf("unexpected PromotionTopGrade: %q", cfg.PromotionTopGrade)
	}
	if cfg.DefaultGrading != "A,A2,B,C,D,E,F" {
		t.Fatalf("unexpected DefaultGrading: %q", cfg.DefaultGrading)
	}
	if !cfg.DBDisablePreparedBinary {
		t.Fatalf("expected DBDisablePreparedBinary=true by default")
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.QStashBaseURL != "https://qstash.upstash.io" || cfg.QStashRetries != 3 {
		t.Fatalf("unexpected QStash defaults: %q retries=%d", cfg.QStashBaseURL, cfg.QStashRetries)
	}
	if cfg.DispatchRecalcInterval != time.Hour || cfg.DispatchHarvestInterval != 24*time.Hour {
		t.Fatalf("unexpected dispatch intervals: %s / %s", cfg.DispatchRecalcInterval, cfg.DispatchHarvestInterval)
	}
}

func TestLoad_QStashRequiresTargetBaseURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_TOKEN", "qs-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when QSTASH_TOKEN is set without a target base URL")
	}
}

func TestLoad_PromotionOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PROMOTION_WINDOW_DAYS", "180")
	t.Setenv("PROMOTION_WIN_THRESHOLD", "2")
	t.Setenv("PROMOTION_PLACE_THRESHOLD", "5")
	t.Setenv("PROMOTION_TOP_GRADE", "A2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PromotionWindowDays != 180 || cfg.PromotionWinThreshold != 2 || cfg.PromotionPlaceThreshold != 5 {
		t.Fatalf("unexpected promotion thresholds: %d/%d/%d", cfg.PromotionWindowDays, cfg.PromotionWinThreshold, cfg.PromotionPlaceThreshold)
	}
	if cfg.PromotionTopGrade != "A2" {
		t.Fatalf("unexpected PromotionTopGrade: %q", cfg.PromotionTopGrade)
	}
}

func TestLoad_RecalcWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RECALC_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when RECALC_MAX_WORKERS < 1")
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://clubraces.example, https://admin.clubraces.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[0] != "https://clubraces.example" {
		t.Fatalf("unexpected first origin: %q", cfg.CORSAllowedOrigins[0])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "debug"},
		{in: "WARN", want: "warn"},
		{in: "error", want: "error"},
		{in: "", want: "info"},
		{in: "verbose", want: "info"},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%s want=%s", tt.in, got, tt.want)
		}
	}
}
