package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/config"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/tui"
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		logLevel   string
		logFile    string
		logConsole bool
		apiURL     string
	)

	rootCmd := &cobra.Command{
		Use:   "medshare",
		Short: "MedShare - emergency medical information from the terminal",
		Long: `MedShare keeps your medical information and emergency contacts ready to share
through a password protected public link.

Run 'medshare' without arguments to launch the interactive dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				logger.Warn("Failed to load config, using defaults", logger.F("error", err))
				cfg = config.DefaultConfig()
			}

			// Flags override the file and are saved for the next run
			configChanged := false
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
				configChanged = true
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
				configChanged = true
			}
			if cmd.Flags().Changed("log-console") {
				cfg.LogConsole = logConsole
				configChanged = true
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = apiURL
				configChanged = true
			}
			if configChanged {
				if err := cfg.Save(); err != nil {
					logger.Warn("Failed to save config", logger.F("error", err))
				}
			}

			logConfig := logger.Config{
				Level:      logger.ParseLevel(cfg.LogLevel),
				FilePath:   cfg.LogFile,
				MaxSize:    10 * 1024 * 1024, // 10MB
				MaxAge:     7,
				MaxBackups: 5,
				Console:    cfg.LogConsole,
			}
			if err := logger.Init(logConfig); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			logger.Info("MedShare started", logger.F("command", cmd.Name()), logger.F("api_url", cfg.APIURL))
			return a.open(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info("Launching TUI")
			m := tui.NewModel(a.store, a.client)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

			if _, err := p.Run(); err != nil {
				logger.Error("TUI error", logger.F("error", err))
				return fmt.Errorf("failed to run TUI: %w", err)
			}

			logger.Info("TUI exited normally")
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
			logger.Info("MedShare exiting", logger.F("command", cmd.Name()))
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API base URL")

	rootCmd.AddCommand(
		newAuthCmd(a),
		newDashboardCmd(a),
		newProfileCmd(a),
		newMedicalCmd(a),
		newContactsCmd(a),
		newLinkCmd(a),
		newPublicCmd(a),
		newAccountCmd(a),
	)

	return rootCmd
}
