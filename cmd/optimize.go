package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mgallet/horaire/app"
	"github.com/mgallet/horaire/config"
	"github.com/mgallet/horaire/core/optimizer"
	"github.com/mgallet/horaire/infra/logger"
)

var (
	planPath  string
	outPath   string
	algorithm string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Allocate the plan's tasks onto the calendar",
	Long: "Reads a plan file (tasks plus pre-existing day commitments), runs the\n" +
		"selected allocation strategy and writes the scheduled result.\n\n" +
		"Available algorithms: " + strings.Join(optimizer.Names(), ", "),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&planPath, "plan", "p", "plan.json", "plan file with tasks and existing allocations")
	optimizeCmd.Flags().StringVarP(&outPath, "out", "o", "-", "result output file, - for stdout")
	optimizeCmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "override the configured algorithm")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx, planPath, outPath, algorithm)
}
