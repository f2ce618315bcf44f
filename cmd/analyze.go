package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/suduli/vcast-analyzer/internal/classify"
	"github.com/suduli/vcast-analyzer/internal/config"
	"github.com/suduli/vcast-analyzer/internal/report"
	"github.com/suduli/vcast-analyzer/internal/scan"
	"github.com/suduli/vcast-analyzer/internal/tree"
)

var (
	analyzeDir      string
	analyzeOutput   string
	analyzeTreeFile string
	analyzeConfig   string
	analyzeVerbose  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan a directory tree for VectorCAST reports and write an Excel summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if cmd.Flags().Changed("config") {
			loaded, err := config.Load(expandTilde(analyzeConfig))
			if err != nil {
				return err
			}
			cfg = loaded
		}

		level := cfg.Logging.Level
		if analyzeVerbose {
			level = "debug"
		}
		SetupLogging(level)

		// An invalid pattern fails here, before any filesystem work.
		set, err := classify.Compile(cfg.CategorySpecs())
		if err != nil {
			return fmt.Errorf("invalid report categories: %w", err)
		}

		output := analyzeOutput
		if !cmd.Flags().Changed("output") && cfg.Output != "" {
			output = cfg.Output
		}
		treeFile := analyzeTreeFile
		if treeFile == "" {
			treeFile = cfg.TreeFile
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err = runAnalysis(ctx, afero.NewOsFs(), set, expandTilde(analyzeDir), expandTilde(output), expandTilde(treeFile))
		if errors.Is(err, context.Canceled) {
			// A user interrupt terminates cleanly.
			slog.Info("analysis interrupted")
			return nil
		}
		return err
	},
}

// runAnalysis executes one scan-and-report pass: tree, scan, workbook,
// optional tree dump, console summary.
func runAnalysis(ctx context.Context, afs afero.Fs, set *classify.Set, root, output, treeFile string) error {
	slog.Info("starting report analysis", "directory", root)

	treeLines, err := tree.NewBuilder(afs).Build(root)
	if err != nil {
		return err
	}

	result, err := scan.New(afs, set).Scan(ctx, root)
	if err != nil {
		return err
	}

	rows := report.Summarize(result)

	if err := report.WriteWorkbook(afs, output, result, treeLines); err != nil {
		return err
	}

	if treeFile != "" {
		if err := tree.Dump(afs, treeLines, treeFile); err != nil {
			slog.Warn("directory tree dump failed", "error", err)
		} else {
			slog.Info("directory tree saved", "path", treeFile)
		}
	}

	report.ConsoleSummary(os.Stdout, rows)
	slog.Info("analysis completed", "output", output)
	return nil
}

// expandTilde expands a leading ~ to the user's home directory. Empty
// strings and paths without a tilde pass through unchanged.
func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeDir, "directory", "d", ".", "root directory to scan")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", config.DefaultOutput, "output Excel filename")
	analyzeCmd.Flags().StringVarP(&analyzeTreeFile, "tree-file", "t", "", "also save the directory tree to this text file")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "path to config file")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(analyzeCmd)
}
