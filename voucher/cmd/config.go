package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/plenert/voucher"
)

// Config mirrors the optional TOML config file. Everything has a working
// default; the file exists mainly to tune the contract-extraction
// vocabulary per business.
type Config struct {
	Extract struct {
		NoiseWords []string `toml:"noise-words"`
		MinLen     int      `toml:"min-len"`
		MaxLen     int      `toml:"max-len"`
	} `toml:"extract"`
	Voucher struct {
		StartNo  int    `toml:"start-no"`
		PadWidth int    `toml:"pad-width"`
		Sentinel string `toml:"sentinel"`
	} `toml:"voucher"`
}

func defaultConfig() Config {
	var c Config
	ext := voucher.DefaultExtractConfig()
	c.Extract.NoiseWords = ext.NoiseWords
	c.Extract.MinLen = ext.MinLen
	c.Extract.MaxLen = ext.MaxLen
	c.Voucher.StartNo = 1
	c.Voucher.PadWidth = 3
	c.Voucher.Sentinel = voucher.UnmatchedCustomer
	return c
}

// loadConfig resolves the config path from --config, then $VOUCHER_CONFIG
// (a .env file in the working directory is honored), then voucher.toml if
// present. No file at all means built-in defaults.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = os.Getenv("VOUCHER_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat("voucher.toml"); err == nil {
			path = "voucher.toml"
		}
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// buildConfig converts the file config plus the --start-no flag into the
// engine's settings.
func (c Config) buildConfig(startNo int) voucher.BuildConfig {
	if startNo <= 0 {
		startNo = c.Voucher.StartNo
	}
	return voucher.BuildConfig{
		StartNo:  startNo,
		PadWidth: c.Voucher.PadWidth,
		Sentinel: c.Voucher.Sentinel,
		Extract: voucher.ExtractConfig{
			NoiseWords: c.Extract.NoiseWords,
			MinLen:     c.Extract.MinLen,
			MaxLen:     c.Extract.MaxLen,
		},
	}
}

// loadArchive reads the archive bundle; a missing file is an empty archive.
func loadArchive() (*voucher.Archive, error) {
	var arch voucher.Archive
	data, err := os.ReadFile(archivePath)
	if os.IsNotExist(err) {
		return &arch, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	if err := arch.UnmarshalBundle(data); err != nil {
		return nil, err
	}
	return &arch, nil
}

func saveArchive(arch *voucher.Archive) error {
	data, err := arch.MarshalBundle()
	if err != nil {
		return err
	}
	if err := os.WriteFile(archivePath, data, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}
