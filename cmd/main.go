package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/mateusmacedo/go-busstation/internal/busticket"
	"github.com/mateusmacedo/go-busstation/internal/config"
	pkgApp "github.com/mateusmacedo/go-busstation/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-busstation/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-busstation/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	os.Exit(run())
}

func run() int {
	flagSet := flag.NewFlagSet("busstation", flag.ContinueOnError)
	configPath := flagSet.StringP("config", "c", "", "Config file (JSONC)")
	dataFile := flagSet.String("data-file", "", "Tickets data file")
	auditLog := flagSet.String("audit-log", "", "Audit log file")
	exportDir := flagSet.String("export-dir", "", "Directory for exported tickets")
	logLevel := flagSet.String("log-level", "", "debug, info, warn or error")
	autoExport := flagSet.Bool("auto-export", false, "Export every sold ticket in the background")
	inMemory := flagSet.Bool("in-memory", false, "Keep tickets in memory only")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	var overrides config.Overrides
	if flagSet.Changed("data-file") {
		overrides.DataFile = dataFile
	}
	if flagSet.Changed("audit-log") {
		overrides.AuditLog = auditLog
	}
	if flagSet.Changed("export-dir") {
		overrides.ExportDir = exportDir
	}
	if flagSet.Changed("log-level") {
		overrides.LogLevel = logLevel
	}
	if flagSet.Changed("auto-export") {
		overrides.AutoExport = autoExport
	}

	cfg, err := config.Load(workDir, *configPath, overrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	appLogger, err := zapAdapter.NewZapAppLogger(cfg.LogLevel, []string{cfg.LogOutput})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = pkgApp.WithSessionID(ctx, pkgInfra.GenerateUUID())

	slice, err := busticket.NewBusTicketSlice(ctx, busticket.Options{Config: cfg, InMemory: *inMemory}, pkgInfra.UUIDGenerator(), appLogger)
	if err != nil {
		pkgApp.LogError(ctx, appLogger, "Erro ao inicializar o guichê", err, nil)
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer func() {
		if err := slice.Close(); err != nil {
			pkgApp.LogError(context.Background(), appLogger, "Erro ao encerrar", err, nil)
		}
	}()

	pkgApp.LogInfo(ctx, appLogger, "Guichê iniciado", map[string]interface{}{
		"data_file": cfg.DataFile,
		"config":    cfg.Source,
	})

	if err := slice.Terminal.Run(ctx, os.Stdout); err != nil {
		pkgApp.LogError(ctx, appLogger, "Sessão encerrada com erro", err, nil)
		return 1
	}

	slice.Service.Save(ctx)
	pkgApp.LogInfo(context.Background(), appLogger, "Guichê encerrado", nil)
	return 0
}
