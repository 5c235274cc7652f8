// Package cli implements rfpctl, an offline front end to the extraction
// and comparison operations.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rfp-desk/internal/service"
	"rfp-desk/pkg/config"
	"rfp-desk/pkg/logger"

	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRoot().Execute()
}

// environment is built once per invocation, before the subcommand runs.
type environment struct {
	procurement *service.ProcurementService
	closeFn     func()
}

func (e *environment) init(offline bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Development); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.Named("rfpctl")

	gateway := service.NewUnavailableGateway(log)
	e.closeFn = func() {}
	if !offline {
		gateway, e.closeFn = service.NewGateway(&cfg.GigaChat, log)
	}
	e.procurement = service.NewProcurementService(gateway, &cfg.Extraction, log)
	return nil
}

func (e *environment) close() {
	if e.closeFn != nil {
		e.closeFn()
	}
	logger.Sync()
}

func NewRoot() *cobra.Command {
	return newRoot(&environment{})
}

func newRoot(env *environment) *cobra.Command {
	var offline bool
	root := &cobra.Command{
		Use:          "rfpctl",
		Short:        "Parse RFPs and vendor replies, compare proposals",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if env.procurement != nil {
				return nil
			}
			return env.init(offline)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.close()
		},
	}
	root.PersistentFlags().BoolVar(&offline, "offline", false, "Use heuristics only, never call the text generation gateway")
	root.AddCommand(
		parseRFPCmd(env),
		parseResponseCmd(env),
		compareCmd(env),
	)
	return root
}

// readInput reads path, or the command's stdin for "" and "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func readJSON(cmd *cobra.Command, path string, v any) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", displayName(path), err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
