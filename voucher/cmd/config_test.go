package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/plenert/voucher"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("VOUCHER_CONFIG", "")
	cfgFile = ""
	defer func() { cfgFile = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Voucher.StartNo != 1 || cfg.Voucher.PadWidth != 3 {
		t.Errorf("voucher defaults = %+v", cfg.Voucher)
	}
	if cfg.Voucher.Sentinel != voucher.UnmatchedCustomer {
		t.Errorf("sentinel = %q", cfg.Voucher.Sentinel)
	}
	def := voucher.DefaultExtractConfig()
	if !reflect.DeepEqual(cfg.Extract.NoiseWords, def.NoiseWords) {
		t.Errorf("noise words = %v", cfg.Extract.NoiseWords)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voucher.toml")
	data := `
[extract]
noise-words = ["销售", "rent"]
min-len = 6
max-len = 12

[voucher]
pad-width = 4
start-no = 100
sentinel = "UNMATCHED"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgFile = path
	defer func() { cfgFile = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extract.MinLen != 6 || cfg.Extract.MaxLen != 12 {
		t.Errorf("extract bounds = %d..%d", cfg.Extract.MinLen, cfg.Extract.MaxLen)
	}
	if !reflect.DeepEqual(cfg.Extract.NoiseWords, []string{"销售", "rent"}) {
		t.Errorf("noise words = %v", cfg.Extract.NoiseWords)
	}

	bc := cfg.buildConfig(0)
	if bc.StartNo != 100 || bc.PadWidth != 4 || bc.Sentinel != "UNMATCHED" {
		t.Errorf("build config = %+v", bc)
	}
	// the flag wins over the config default
	if got := cfg.buildConfig(7); got.StartNo != 7 {
		t.Errorf("start no = %d, want 7", got.StartNo)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voucher.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile = path
	defer func() { cfgFile = "" }()

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}
