// Command haccpctl administers a HACCP installation from the shell:
// bootstrapping tenants, hashing PINs, inspecting period references and
// running the reminder sweep on demand.
package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"haccp/internal/config"
	"haccp/internal/logging"
	"haccp/internal/repository/postgres"
)

var (
	cfg      *config.Config
	logLevel string
	flushLog func()
)

var rootCmd = &cobra.Command{
	Use:           "haccpctl",
	Short:         "Administration tool for the HACCP documentation service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		flushLog, err = logging.Setup(cfg.Log)
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if flushLog != nil {
			flushLog()
		}
	},
}

// openDB connects to the configured database. Callers close it.
func openDB() (*sqlx.DB, error) {
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	zap.L().Named("haccpctl").Debug("database connected", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))
	return db, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override HACCP_LOG_LEVEL")

	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(tenantCmd)
	rootCmd.AddCommand(hashPINCmd)
	rootCmd.AddCommand(periodCmd)
	rootCmd.AddCommand(remindCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
