package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hedgineer/aiapi/internal/config"
	"github.com/hedgineer/aiapi/internal/dependency"
	"github.com/hedgineer/aiapi/internal/shared/stringutils"
)

var queryConfigPath string

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Answer a query using the built-in example functions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryConfigPath, "config", "c", "", "Config file path (default ~/.aiapi/config.json)")
}

func runQuery(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(queryConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	app := container.App()
	if err := registerExampleFunctions(app); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	answer, err := app.ExecuteQuery(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(strings.TrimSpace(stringutils.StripThink(answer)))
	return nil
}
