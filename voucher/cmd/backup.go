package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/plenert/voucher"
	"github.com/spf13/cobra"
)

var (
	backupOutput   string
	backupCompress bool
)

// backupCmd exports the archive bundle, optionally brotli-compressed.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the archive as a backup bundle",
	RunE: func(_ *cobra.Command, _ []string) error {
		arch, err := loadArchive()
		if err != nil {
			return err
		}
		data, err := arch.MarshalBundle()
		if err != nil {
			return err
		}

		name := backupOutput
		if backupCompress {
			var buf bytes.Buffer
			bw := brotli.NewWriter(&buf)
			if _, err := bw.Write(data); err != nil {
				return err
			}
			if err := bw.Close(); err != nil {
				return err
			}
			data = buf.Bytes()
			name += ".br"
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		slog.Info("backup written", "file", name, "bytes", len(data))
		return nil
	},
}

// restoreCmd fully replaces the archive from a backup bundle, compressed or
// not.
var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Args:  cobra.ExactArgs(1),
	Short: "Replace the archive from a backup bundle",
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		// A bundle is a JSON object; anything else is assumed to be the
		// brotli-compressed form.
		if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) == 0 || trimmed[0] != '{' {
			data, err = io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
			if err != nil {
				return fmt.Errorf("decompress backup: %w", err)
			}
		}

		arch, err := loadArchive()
		if err != nil {
			// a corrupt archive on disk should not block a restore
			slog.Warn("existing archive unreadable, replacing", "error", err)
			arch = &voucher.Archive{}
		}
		if err := arch.UnmarshalBundle(data); err != nil {
			return err
		}
		if err := saveArchive(arch); err != nil {
			return err
		}
		slog.Info("archive restored",
			"accounts", len(arch.Accounts),
			"customers", len(arch.Customers),
			"rules", len(arch.Rules),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)

	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "fin_backup.json", "Backup file to write.")
	backupCmd.Flags().BoolVar(&backupCompress, "compress", false, "Compress the bundle with brotli (appends .br).")
}
