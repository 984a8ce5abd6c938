package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WORK_DAYS_PER_MONTH", "")
	t.Setenv("WORK_HOURS_PER_DAY", "")
	t.Setenv("SOCIAL_TAX_RATE", "")
	t.Setenv("INPS_TAX_RATE", "")

	cfg := Load()
	if cfg.WorkDaysPerMonth != 22 || cfg.WorkHoursPerDay != 8 {
		t.Fatalf("expected 22x8 calendar, got %dx%d", cfg.WorkDaysPerMonth, cfg.WorkHoursPerDay)
	}
	if cfg.SocialTaxRate != 12 || cfg.INPSTaxRate != 1 {
		t.Fatalf("expected fixed 12/1 rates, got %v/%v", cfg.SocialTaxRate, cfg.INPSTaxRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORK_DAYS_PER_MONTH", "21")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("PAYROLL_WORKERS", "not-a-number")

	cfg := Load()
	if cfg.WorkDaysPerMonth != 21 {
		t.Fatalf("expected 21 work days, got %d", cfg.WorkDaysPerMonth)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PayrollWorkers != 4 {
		t.Fatalf("expected fallback worker count, got %d", cfg.PayrollWorkers)
	}
}

func TestValidateRejectsBadCalendar(t *testing.T) {
	cfg := Load()
	cfg.WorkDaysPerMonth = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero work days")
	}
}

func TestValidateProductionNeedsKeyWithDatabase(t *testing.T) {
	cfg := Load()
	cfg.Environment = "production"
	cfg.DatabaseURL = "postgres://localhost/hrpay"
	cfg.DataEncryptionKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing encryption key")
	}
}
