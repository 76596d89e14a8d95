package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/EzraHwang/BTSBackoffice/config"
	"github.com/EzraHwang/BTSBackoffice/internal/module/backofficeapp/auth"
	"github.com/EzraHwang/BTSBackoffice/internal/module/backofficeapp/dashboard"
	"github.com/EzraHwang/BTSBackoffice/internal/pkg/jwt"
	internalMiddleware "github.com/EzraHwang/BTSBackoffice/internal/pkg/middleware"
	"github.com/EzraHwang/BTSBackoffice/internal/pkg/session"
	"github.com/EzraHwang/BTSBackoffice/pkg/applogger"
	"github.com/EzraHwang/BTSBackoffice/pkg/memcache"
	"github.com/EzraHwang/BTSBackoffice/pkg/middleware"
	"github.com/EzraHwang/BTSBackoffice/pkg/monitoring"
	"github.com/EzraHwang/BTSBackoffice/pkg/redis"
	"github.com/EzraHwang/BTSBackoffice/pkg/server"
	"github.com/EzraHwang/BTSBackoffice/pkg/validator"
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
	)

	mon.Start(ctx)

	validate := validator.Get()

	hc := &http.Client{
		Timeout: c.Provider.Timeout,
	}

	jsonWebToken := jwt.NewJSONWebToken([]byte(c.JWT.PrivateKey), []byte(c.JWT.PublicKey))

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	sessionStore := session.NewRedisSessionStore(logger, rc)

	adminSessionMiddleware := internalMiddleware.NewAdminSessionMiddleware(jsonWebToken, sessionStore)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	referenceZone := time.FixedZone(
		fmt.Sprintf("UTC%+d", c.Dashboard.TimezoneOffsetHours),
		c.Dashboard.TimezoneOffsetHours*3600,
	)

	authUseCase := auth.NewAuthUseCase(auth.AuthUseCaseProperty{
		Logger:           logger,
		Timeout:          c.Application.Timeout,
		AdminUsername:    c.Authentication.AdminUsername,
		AdminPassword:    c.Authentication.AdminPassword,
		MaxLoginAttempts: c.Authentication.MaxLoginAttempts,
		LockoutDuration:  c.Authentication.LockoutDuration,
		SessionTimeout:   c.Authentication.SessionTimeout,
		JSONWebToken:     jsonWebToken,
		Session:          sessionStore,
		AttemptStore:     memcache.New(),
	})
	auth.InitHTTPHandler(router, adminSessionMiddleware, validate, authUseCase)

	orderInfoRepo := dashboard.NewOrderInfoRepository(c.Provider.BaseURL, logger, hc)
	dashboardUseCase := dashboard.NewDashboardUseCase(dashboard.DashboardUseCaseProperty{
		Logger:              logger,
		Timeout:             c.Application.Timeout,
		Location:            referenceZone,
		TicketTypeLabels:    dashboard.TicketTypeLabels,
		OrderInfoRepository: orderInfoRepo,
		CacheStore:          memcache.New(),
		CacheTTL:            c.Dashboard.CacheTTL,
		CacheSlidingTTL:     c.Dashboard.CacheSlidingTTL,
		Rand:                rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	dashboard.InitHTTPHandler(router, adminSessionMiddleware, validate, dashboardUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	rc.Close()
	mon.Stop(ctx)
}
