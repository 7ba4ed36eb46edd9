package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	v1 "github.com/solorad/blog-posts/server/pkg/api/v1"
	"github.com/solorad/blog-posts/server/pkg/blog"
	"github.com/solorad/blog-posts/server/pkg/config"
	"github.com/solorad/blog-posts/server/pkg/log"
	"github.com/solorad/blog-posts/server/pkg/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/reflection"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var grpcEndpoint, httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC blog service and its REST gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("grpc-server-endpoint") {
				cfg.GRPCEndpoint = grpcEndpoint
			}
			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&grpcEndpoint, "grpc-server-endpoint", config.DefaultGRPCEndpoint, "gRPC server endpoint")
	cmd.Flags().StringVar(&httpAddr, "http-addr", config.DefaultHTTPAddr, "REST gateway listen address")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	collector := metrics.NewCollector()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	lis, err := net.Listen("tcp", cfg.GRPCEndpoint)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(collector.UnaryServerInterceptor()))
	v1.RegisterBlogServiceServer(grpcServer, blog.NewBlogServiceServer(store))
	// Register reflection service on gRPC server.
	reflection.Register(grpcServer)

	// Note: the gateway dials lazily, the gRPC server need not be up yet.
	gwmux := v1.NewServeMux()
	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if err := v1.RegisterBlogServiceHandlerFromEndpoint(ctx, gwmux, cfg.GRPCEndpoint, dialOpts); err != nil {
		_ = lis.Close()
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(registry))
	mux.Handle("/swagger/", http.StripPrefix("/swagger", http.FileServer(v1.SwaggerFS())))
	mux.Handle("/", gwmux)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           log.Requests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("GRPC server started on %v", cfg.GRPCEndpoint)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		log.Infof("REST server is starting on %v", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})
	return g.Wait()
}
