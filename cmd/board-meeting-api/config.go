// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/nats-io/nats.go"

	"github.com/MochamaB/eboard-sub001/internal/logging"
	"github.com/MochamaB/eboard-sub001/internal/service"
	"github.com/MochamaB/eboard-sub001/pkg/utils"
)

// flags are the command line flags for the board meeting service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the board meeting service.
type environment struct {
	Port               string
	NatsURL            string
	SkipEtagValidation bool
	SkipTimeCheck      bool
	RetentionDays      int
	EmailEnabled       bool
	SMTP               smtpConfig
	OTelEndpoint       string
	OTelInsecure       bool
}

// smtpConfig holds SMTP server configuration
type smtpConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// parseFlags parses command line flags for the board meeting service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the board meeting service
func parseEnv() environment {
	port := utils.Coalesce(os.Getenv("PORT"), "8080")
	natsURL := utils.Coalesce(os.Getenv("NATS_URL"), nats.DefaultURL)

	retentionDays := service.DefaultRetentionDays
	if raw := os.Getenv("RETENTION_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			slog.With("value", raw).Error("invalid RETENTION_DAYS provided, using default")
		} else {
			retentionDays = parsed
		}
	}

	return environment{
		Port:               port,
		NatsURL:            natsURL,
		SkipEtagValidation: os.Getenv("SKIP_ETAG_VALIDATION") == "true",
		SkipTimeCheck:      os.Getenv("SKIP_TIME_CHECK") == "true",
		RetentionDays:      retentionDays,
		EmailEnabled:       os.Getenv("EMAIL_ENABLED") == "true",
		SMTP:               parseSMTPConfig(),
		OTelEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelInsecure:       os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
	}
}

// parseSMTPConfig parses SMTP configuration from environment variables
func parseSMTPConfig() smtpConfig {
	smtpPort := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.With("value", raw).Error("invalid SMTP_PORT provided, using default")
		} else {
			smtpPort = parsed
		}
	}

	return smtpConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		From:     utils.Coalesce(os.Getenv("SMTP_FROM"), "governance@eboard.app"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}
