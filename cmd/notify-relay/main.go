package main

import (
	"fmt"
	"os"

	"github.com/opendoors/notify-relay/internal/config"
	httphandler "github.com/opendoors/notify-relay/internal/http"
	"github.com/opendoors/notify-relay/internal/logger"
	"github.com/opendoors/notify-relay/internal/metrics"
	"github.com/opendoors/notify-relay/internal/provider"
	"github.com/opendoors/notify-relay/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	if cfg.Twilio.WhatsAppNumber == "" {
		log.Warn().Msg("TWILIO_WHATSAPP_NUMBER is not set, whatsapp deliveries will fail")
	}

	sender := provider.NewTwilio(cfg.Twilio)
	collector := metrics.NewCollector()
	notifications := service.NewNotificationService(sender, collector, log)

	handler := httphandler.NewHandler(notifications, cfg.Environment, log)
	router := httphandler.NewRouter(handler, cfg, collector.Handler(), log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Strs("cors_origins", cfg.CORS.AllowedOrigins).Msg("starting notify relay")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
