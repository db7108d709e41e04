// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ackconfig "comply/internal/ack/config"
	ackhandler "comply/internal/ack/handler"
	ackmetrics "comply/internal/ack/metrics"
	ackscheduler "comply/internal/ack/scheduler"
	ackservice "comply/internal/ack/service"
	ackstore "comply/internal/ack/store"
	employeehandler "comply/internal/employee/handler"
	employeeservice "comply/internal/employee/service"
	employeestore "comply/internal/employee/store"
	"comply/internal/escalation"
	"comply/internal/jwttoken"
	"comply/internal/platform/config"
	"comply/internal/platform/httpserver"
	"comply/internal/platform/logger"
	"comply/internal/platform/postgres"
	platformredis "comply/internal/platform/redis"
	policycache "comply/internal/policy/cache"
	policyhandler "comply/internal/policy/handler"
	policymetrics "comply/internal/policy/metrics"
	policyservice "comply/internal/policy/service"
	policystore "comply/internal/policy/store"
	templatehandler "comply/internal/template/handler"
	templateservice "comply/internal/template/service"
	templatestore "comply/internal/template/store"
	tenanthandler "comply/internal/tenant/handler"
	tenantservice "comply/internal/tenant/service"
	tenantstore "comply/internal/tenant/store"
	httptransport "comply/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: Postgres when a DSN is configured, in-memory otherwise.
	var (
		policies  policyservice.Store
		templates templateservice.Store
		employees employeeservice.Store
		tenants   tenantservice.Store
		acks      ackservice.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		policies = policystore.NewPostgres(db)
		templates = templatestore.NewPostgres(db)
		employees = employeestore.NewPostgres(db)
		tenants = tenantstore.NewPostgres(db)
		acks = ackstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		policies = policystore.NewInMemory()
		templates = templatestore.NewInMemory()
		employees = employeestore.NewInMemory()
		tenants = tenantstore.NewInMemory()
		acks = ackstore.NewInMemory()
		log.Info("using in-memory stores")
	}

	templateSvc := templateservice.New(templates, templateservice.WithLogger(log))

	policyOpts := []policyservice.Option{
		policyservice.WithLogger(log),
		policyservice.WithMetrics(policymetrics.New()),
		policyservice.WithValidity(cfg.PolicyValidity),
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		policyOpts = append(policyOpts,
			policyservice.WithObligationCache(policycache.New(redisClient.Client, cfg.Redis.CacheTTL)))
		log.Info("obligation cache enabled")
	}
	policySvc := policyservice.New(policies, templates, policyOpts...)

	employeeSvc := employeeservice.New(employees, employeeservice.WithLogger(log))
	tenantSvc := tenantservice.New(tenants, tenantservice.WithLogger(log))

	// Escalations are persisted through a channel-fed worker.
	escalationPublisher := escalation.NewPublisher(escalation.NewInMemoryStore())
	escalationInbox := make(chan escalation.Record, 64)
	escalationWorker := escalation.NewWorker(escalationPublisher, escalationInbox)
	go func() {
		if err := escalationWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("escalation worker stopped", "error", err)
		}
	}()

	roleMapping := ackconfig.DefaultRoleMapping()
	if cfg.RoleMappingPath != "" {
		roleMapping, err = ackconfig.LoadRoleMapping(cfg.RoleMappingPath)
		if err != nil {
			log.Error("role mapping file rejected", "path", cfg.RoleMappingPath, "error", err)
			os.Exit(1)
		}
		log.Info("role mapping loaded", "path", cfg.RoleMappingPath)
	}

	ackSvc := ackservice.New(acks, employees, policySvc,
		ackservice.WithLogger(log),
		ackservice.WithMetrics(ackmetrics.New()),
		ackservice.WithConfig(ackconfig.Config{
			NewHireDueDays: cfg.NewHireDueDays,
			PeriodicYears:  cfg.PeriodicYears,
		}),
		ackservice.WithRoleMapping(roleMapping),
		ackservice.WithEscalationSink(channelSink(escalationInbox)),
	)

	sweeper := ackscheduler.New(ackSvc, cfg.SweepSchedule, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Error("sweep scheduler failed to start", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	router := httptransport.NewRouter(httptransport.Handlers{
		Policy:   policyhandler.New(policySvc, log),
		Ack:      ackhandler.New(ackSvc, log),
		Employee: employeehandler.New(employeeSvc, ackSvc, log),
		Template: templatehandler.New(templateSvc, log),
		Tenant:   tenanthandler.New(tenantSvc, log),
	}, jwttoken.NewAdapter(jwtService), cfg.AdminToken, log)

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("starting comply", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	sweeper.Stop()
}

// channelSink adapts the escalation inbox channel to the engine's sink
// interface without blocking request handling when the worker lags.
type channelSink chan<- escalation.Record

func (c channelSink) Emit(ctx context.Context, record escalation.Record) error {
	select {
	case c <- record:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
