// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"cabway/internal/auth"
	"cabway/internal/config"
	httptransport "cabway/internal/http"
	"cabway/internal/infra"
	"cabway/internal/modules/booking"
	"cabway/internal/modules/fleet"
	"cabway/internal/modules/transit"
	"cabway/internal/modules/user"
	"cabway/internal/notify"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if cfg.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{})
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer func() { _ = redisClient.Close() }()

	var notifier booking.Notifier = notify.NopNotifier{}
	if cfg.MQTT.BrokerURL != "" {
		mqttClient, err := infra.NewMQTT(cfg.MQTT.BrokerURL, cfg.MQTT.ClientID)
		if err != nil {
			log.WithError(err).Fatal("connect mqtt")
		}
		defer mqttClient.Disconnect(250)
		notifier = notify.NewMQTTNotifier(mqttClient, log)
	}

	authSvc := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	bookingStore := booking.NewPostgresStore(dbPool)

	transitStore := transit.NewPostgresStore(dbPool)
	graphCache := transit.NewRedisGraphCache(redisClient)
	transitSvc := transit.NewService(transitStore, graphCache, bookingStore)

	fleetStore := fleet.NewPostgresStore(dbPool)
	fleetSvc := fleet.NewService(fleetStore, bookingStore)

	bookingSvc := booking.NewService(bookingStore, transitSvc, fleetSvc, notifier)

	userStore := user.NewPostgresStore(dbPool)
	userSvc := user.NewService(userStore, authSvc)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Transit: transitSvc,
		Fleet:   fleetSvc,
		Booking: bookingSvc,
		Users:   userSvc,
		Tokens:  authSvc,
		Log:     log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown http server")
		}
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("starting api server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("serve http")
	}
}
