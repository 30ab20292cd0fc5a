package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/patpet21/prdxprew-sub000/internal/adapter/grpc"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/report"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/scenario"
	"github.com/patpet21/prdxprew-sub000/internal/usecase/seeder"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ReturnEngineService gRPC server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Scenario store
	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 2. Reference scenarios
	created, err := seeder.NewSystemSeeder(repo, logger).Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed reference scenarios: %w", err)
	}
	logger.Info("reference scenarios seeded", zap.Int("created", created))

	// 3. Services
	chartCache, closeCache := openChartCache(ctx, cfg, logger)
	defer closeCache()

	scenarioService := scenario.NewScenarioService(repo, logger)
	reportService := report.NewReportService(chartCache, cfg.CacheTTL(), logger)

	// 4. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.GRPC.APIToken),
		),
	)
	grpcadapter.RegisterReturnEngineServiceServer(grpcServer, grpcadapter.NewServer(scenarioService, reportService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPC.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("gRPC server failed: %w", err)
	}

	logger.Info("gRPC server stopped")
	return nil
}
