package main

import (
	"context"
	"fmt"
	"os"

	"retro-board-be/internal/bootstrap"
	"retro-board-be/internal/config"
	"retro-board-be/internal/pkg/logger"
	"retro-board-be/internal/tracer"
	"retro-board-be/pkg/database"

	"github.com/spf13/cobra"
)

var (
	jsonFlag    bool
	verboseFlag bool

	retroFlag    string
	categoryFlag string
	hostFlag     string
	modelFlag    string

	usernameFlag string
	emailFlag    string
	forceFlag    bool
)

var rootCmd = &cobra.Command{
	Use:           "insights",
	Short:         "Cluster retrospective notes and generate action items",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Compute cluster labels for one category of a retrospective (read only)",
	RunE:  runCluster,
}

var applyClustersCmd = &cobra.Command{
	Use:   "apply-clusters",
	Short: "Compute cluster labels and store them on the notes",
	RunE:  runApplyClusters,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate action items for a retrospective",
	RunE:  runGenerate,
}

var createUserCmd = &cobra.Command{
	Use:   "create-genai-user",
	Short: "Create the service user that authors generated action items",
	RunE:  runCreateUser,
}

var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Short: "Load the embedding model so the first clustering call does not pay for it",
	RunE:  runWarmup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log SQL statements and mirror service logs to stderr")

	for _, c := range []*cobra.Command{clusterCmd, applyClustersCmd} {
		c.Flags().StringVarP(&retroFlag, "retro", "r", "", "Retrospective ID")
		c.Flags().StringVarP(&categoryFlag, "category", "c", "", "Note category (start, stop, good, bad, actions)")
		_ = c.MarkFlagRequired("retro")
		_ = c.MarkFlagRequired("category")
	}

	generateCmd.Flags().StringVarP(&retroFlag, "retro", "r", "", "Retrospective ID")
	generateCmd.Flags().StringVar(&hostFlag, "host", "", "Generation endpoint for this call only (default OLLAMA_HOST)")
	generateCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model for this call only (default LLM_MODEL)")
	_ = generateCmd.MarkFlagRequired("retro")

	createUserCmd.Flags().StringVar(&usernameFlag, "username", "", "Username (default GENAI_SERVICE_USERNAME)")
	createUserCmd.Flags().StringVar(&emailFlag, "email", "", "Email (default GENAI_SERVICE_EMAIL)")
	createUserCmd.Flags().BoolVar(&forceFlag, "force", false, "Delete and recreate an existing user")

	rootCmd.AddCommand(clusterCmd, applyClustersCmd, generateCmd, createUserCmd, warmupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// withContainer wires the services for one command run and tears them down afterwards.
func withContainer(ctx context.Context, fn func(*config.Config, *bootstrap.Container) error) error {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()
	var sysLogger *logger.ZapLogger
	if verboseFlag {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production", cfg.App.LogLevel)
	} else {
		sysLogger = logger.NewIsolatedLogger(cfg.App.LogFilePath)
	}
	defer sysLogger.Sync()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, verboseFlag)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	container, err := bootstrap.NewContainer(db, cfg, sysLogger)
	if err != nil {
		return err
	}
	defer container.Close()

	if container.ConsumerService != nil {
		if err := container.ConsumerService.Consume(ctx); err != nil {
			sysLogger.Warn("CLI", "Event audit consumer not started", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return fn(cfg, container)
}
