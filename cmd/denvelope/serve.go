/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/grpcx"
	"dirpx.dev/denvelope/internal/demo"
	"dirpx.dev/denvelope/translate"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			log := cfg.Log.Logger(os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	srv, err := demo.New(cfg, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	if cfg.Server.GRPCAddr != "" {
		g.Go(func() error { return serveGRPC(ctx, cfg, log) })
	}
	return g.Wait()
}

// serveGRPC exposes the health service behind the envelope interceptor.
func serveGRPC(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	m, err := cfg.Statuses.Mapper()
	if err != nil {
		return err
	}
	tr := translate.New(m, translate.WithMessages(cfg.Messages))
	gs := grpc.NewServer(grpc.UnaryInterceptor(
		grpcx.UnaryServerInterceptor(tr, grpcx.WithMapper(m), grpcx.WithLogger(log)),
	))
	healthpb.RegisterHealthServer(gs, health.NewServer())

	go func() {
		<-ctx.Done()
		gs.GracefulStop()
	}()
	log.Info().Str("addr", cfg.Server.GRPCAddr).Msg("grpc listening")
	if err := gs.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}
