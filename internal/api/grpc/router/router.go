// Package router builds the gRPC server that exposes the standard health
// service for orchestration probes.
package router

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/defo-server/internal/api/grpc/middleware"
	"github.com/dtroode/defo-server/internal/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router represents a gRPC router for the health service.
type Router struct {
	db     Pinger
	health *health.Server
	logger *logger.Logger
}

// New creates a new gRPC Router instance.
func New(db Pinger, logger *logger.Logger) *Router {
	return &Router{db: db, health: health.NewServer(), logger: logger}
}

// Register registers the health and reflection services and returns the
// configured gRPC server.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(r.recover)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(r.recover)),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}

// Probe sets the overall serving status from a database ping, then keeps
// doing so every interval until ctx is done. On return every service is
// marked NOT_SERVING.
func (r *Router) Probe(ctx context.Context, interval time.Duration) {
	r.check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.health.Shutdown()
			return
		case <-ticker.C:
			r.check(ctx)
		}
	}
}

func (r *Router) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	serving := healthpb.HealthCheckResponse_SERVING
	if err := r.db.Ping(pingCtx); err != nil {
		r.logger.Warn("gRPC health: database ping failed", "error", err.Error())
		serving = healthpb.HealthCheckResponse_NOT_SERVING
	}
	r.health.SetServingStatus("", serving)
}

func (r *Router) recover(p any) error {
	r.logger.Error("gRPC: panic recovered", "panic", p)
	return status.Errorf(codes.Internal, "internal server error")
}
