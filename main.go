package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	configPath string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "blockflow",
		Short:         "Terminal flowchart editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(opts, 0)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/blockflow/config.toml)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(
		newEditCmd(opts),
		newStressCmd(opts),
		newReplayCmd(opts),
		newExportCmd(opts),
		newTypesCmd(),
	)
	return root
}

func newEditCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the editor on an empty scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(opts, 0)
		},
	}
}

func newStressCmd(opts *cliOptions) *cobra.Command {
	var blocks int
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Open the editor on a generated tree of blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(opts, blocks)
		},
	}
	cmd.Flags().IntVar(&blocks, "blocks", 200, "number of blocks to generate")
	return cmd
}

func newReplayCmd(opts *cliOptions) *cobra.Command {
	var pngPath string
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Run a scripted input scenario and print the resulting scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, opts.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			sc, err := LoadScenario(args[0])
			if err != nil {
				return err
			}
			log.Info("replaying scenario", "name", sc.Name, "events", len(sc.Events))
			editor := sc.Run(cfg.EditorOptions(log))

			if err := WriteDump(cmd.OutOrStdout(), editor.Store().Snapshot(), editor.View()); err != nil {
				return err
			}
			if pngPath != "" {
				path := cfg.GetSavePath(pngPath)
				if err := ExportPNG(path, editor.Store().Snapshot(), editor.Layout(), false); err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintln(cmd.ErrOrStderr(), "wrote", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "also export the final scene as PNG")
	return cmd
}

func newExportCmd(opts *cliOptions) *cobra.Command {
	var (
		blocks int
		out    string
		dark   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a generated tree of blocks to PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, opts.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			editorOpts := cfg.EditorOptions(log)
			store := NewStore(log)
			buildStressScene(store, blocks, editorOpts.Layout)

			path := cfg.GetSavePath(out)
			if err := ExportPNG(path, store.Snapshot(), editorOpts.Layout, dark); err != nil {
				return err
			}
			log.Info("png exported", "path", path, "blocks", store.Len())
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	cmd.Flags().IntVar(&blocks, "blocks", 15, "number of blocks to generate")
	cmd.Flags().StringVarP(&out, "out", "o", "blockflow.png", "output file")
	cmd.Flags().BoolVar(&dark, "dark", false, "use the dark palette")
	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List block types and their appearance",
		Run: func(cmd *cobra.Command, args []string) {
			bold := color.New(color.Bold)
			faint := color.New(color.Faint)
			for _, t := range AllBlockTypes() {
				a := ResolveAppearance(t)
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s %s\n", bold.Sprint(a.Label), faint.Sprintf("%-14s", a.Icon), hexColor(a.Color))
			}
		},
	}
}

// newLogger builds the session logger. Without a log file, logs go to
// fallback, or nowhere when fallback is nil.
func newLogger(cfg *Config, logFile string, fallback io.Writer) (*slog.Logger, func(), error) {
	if logFile == "" {
		logFile = cfg.Log.File
	}

	w := fallback
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	if w == nil {
		w = io.Discard
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()})
	return slog.New(handler).With("session", uuid.NewString()), closeFn, nil
}

func runEditor(opts *cliOptions, stressBlocks int) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	// The terminal belongs to the editor, so logs only go to a file.
	log, closeLog, err := newLogger(cfg, opts.logFile, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	prefs, err := OpenFilePreferences(preferencesPath())
	if err != nil {
		return err
	}
	theme := NewThemeController(prefs, cfg.Namespace)

	editorOpts := cfg.EditorOptions(log)
	store := NewStore(log)
	if stressBlocks > 0 {
		buildStressScene(store, stressBlocks, editorOpts.Layout)
	}
	editor := NewEditor(store, editorOpts)

	log.Info("editor starting", "blocks", store.Len(), "theme", string(theme.Theme()))
	p := tea.NewProgram(
		initialModel(editor, theme, cfg, log, lipgloss.HasDarkBackground()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	log.Info("editor stopped")
	return nil
}
