package main

import (
	"conditionalert/pkg/infrastructure/changestream"
	"conditionalert/pkg/infrastructure/transport"
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func serviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "service",
		Usage: "receives change events over HTTP and Kafka and sends condition alerts",
		Action: func(c *cli.Context) error {
			cnf, err := parseEnv()
			if err != nil {
				return err
			}
			setupLogger(cnf)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runService(ctx, cnf)
		},
	}
}

func runService(ctx context.Context, cnf *config) error {
	db, err := connectDB(ctx, cnf)
	if err != nil {
		return err
	}
	defer db.Close()

	sender, err := newSMSSender(cnf, false)
	if err != nil {
		return err
	}
	handler := newAlertHandler(cnf, db, sender)

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	router := transport.Router(handler, func(r *http.Request) error {
		return db.PingContext(r.Context())
	})
	httpServer := &http.Server{Addr: cnf.ServeHTTPAddress, Handler: router}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("address", cnf.ServeHTTPAddress).Info("starting http server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		listener, err := net.Listen("tcp", cnf.ServeGRPCAddress)
		if err != nil {
			return errors.Wrapf(err, "failed to listen on %s", cnf.ServeGRPCAddress)
		}
		log.WithField("address", cnf.ServeGRPCAddress).Info("starting grpc health server")
		healthServer.SetServingStatus(appID, healthpb.HealthCheckResponse_SERVING)
		return grpcServer.Serve(listener)
	})

	if cnf.KafkaBrokers != "" {
		reader := changestream.NewKafkaReader(changestream.ReaderConfig{
			Brokers: cnf.KafkaBrokers,
			Topic:   cnf.KafkaTopic,
			GroupID: cnf.KafkaGroupID,
		})
		g.Go(func() error {
			defer reader.Close()
			log.WithFields(log.Fields{
				"brokers": cnf.KafkaBrokers,
				"topic":   cnf.KafkaTopic,
				"group":   cnf.KafkaGroupID,
			}).Info("consuming change events")
			return changestream.NewConsumer(reader, handler, cnf.KafkaConcurrency).Run(gctx)
		})
	} else {
		log.Info("kafka brokers not configured, accepting change events over http only")
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cnf.ShutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	return g.Wait()
}
