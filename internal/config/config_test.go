package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	os.WriteFile(path, []byte("catalog_path: Insulin_Rx.xlsx\n"+
		"titration_exceptions:\n"+
		"  - insulin: Lantus\n"+
		"    concentration: \"100\"\n"+
		"  - insulin: Basaglar\n"+
		"    device_form: KwikPen\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.TitrationExceptions) != 2 {
		t.Fatalf("expected 2 exceptions, got %d", len(c.TitrationExceptions))
	}
	if c.TitrationExceptions[0].Concentration != "U-100" {
		t.Errorf("concentration not normalized: %q", c.TitrationExceptions[0].Concentration)
	}
	if want := filepath.Join(dir, "Insulin_Rx.xlsx"); c.CatalogPath != want {
		t.Errorf("CatalogPath = %q, want %q", c.CatalogPath, want)
	}

	rec := model.InsulinRecord{Name: "Basaglar", Concentration: "U-100", DeviceForm: "KwikPen", UnitsPerDevice: 300}
	if got := dosing.TitrationIncrement(rec, c.TitrationOverrides()); got != 2 {
		t.Errorf("increment for configured exception = %d, want 2", got)
	}
}

func TestLoadFromFile_FlagCatalogWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	os.WriteFile(path, []byte("catalog_path: other.csv\n"), 0644)

	c := Config{CatalogPath: "mine.csv"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.CatalogPath != "mine.csv" {
		t.Errorf("CatalogPath = %q, want flag value", c.CatalogPath)
	}
}

func TestLoadFromFile_NotStandardLong(t *testing.T) {
	for _, name := range []string{"NovoRapid", "Awiqli", "Humulin N"} {
		dir := t.TempDir()
		path := filepath.Join(dir, "policy.yaml")
		os.WriteFile(path, []byte("titration_exceptions:\n  - insulin: "+name+"\n"), 0644)

		var c Config
		if err := c.LoadFromFile(path); err == nil {
			t.Errorf("expected error for %s exception", name)
		}
	}
}

func TestLoadFromFile_BadConcentration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	os.WriteFile(path, []byte("titration_exceptions:\n  - insulin: Lantus\n    concentration: strong\n"), 0644)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unparseable concentration")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	err := c.LoadFromFile("/nonexistent/policy.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateWithDSN(t *testing.T) {
	var c Config
	if err := c.Validate(); err != nil {
		t.Errorf("empty catalog path should use the embedded catalog: %v", err)
	}
	if err := c.ValidateWithDSN(); err == nil {
		t.Error("expected error without DSN")
	}

	c.CatalogPath = filepath.Join(t.TempDir(), "missing.xlsx")
	c.DSN = "postgres://localhost/rx"
	if err := c.ValidateWithDSN(); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("RXCALC_ADDR", ":9090")
	t.Setenv("RXCALC_CATALOG", "/data/Insulin_Rx.xlsx")
	t.Setenv("RXCALC_DSN", "")
	t.Setenv("DATABASE_URL", "postgres://db/rx")

	c := Config{LogLevel: "debug"}
	c.LoadEnv()

	if c.Addr != ":9090" {
		t.Errorf("Addr = %q", c.Addr)
	}
	if c.CatalogPath != "/data/Insulin_Rx.xlsx" {
		t.Errorf("CatalogPath = %q", c.CatalogPath)
	}
	if c.DSN != "postgres://db/rx" {
		t.Errorf("DSN = %q, want DATABASE_URL fallback", c.DSN)
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, flag value should win", c.LogLevel)
	}
	if c.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default", c.LogFormat)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("RXCALC_ADDR", "")
	var c Config
	c.LoadEnv()
	if c.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", c.Addr, DefaultAddr)
	}
}
