// Package main implements the booking REST API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/summit-events/rsvp-service/internal/api"
	"github.com/summit-events/rsvp-service/internal/booking"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

func main() {
	ctx := context.Background()

	// Load config from environment
	tableName := os.Getenv("BOOKING_TABLE_NAME")
	if tableName == "" {
		tableName = "booking"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	// Initialize AWS config
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to load AWS config", slog.String("error", err.Error()))
		panic(err)
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)
	repo := booking.NewDynamoDBRepository(dynamoClient, tableName)

	// The booking table must be reachable before serving traffic.
	if err := repo.Ping(ctx); err != nil {
		logger.Error("FATAL: Booking table is not reachable",
			slog.String("table", tableName),
			slog.String("error", err.Error()),
		)
		panic(err)
	}
	logger.Info("Connected to booking table", slog.String("table", tableName))

	server := api.NewServer(repo, logger)
	handler := otelhttp.NewHandler(server.Routes(), "rsvp-api")

	logger.Info("Starting http server", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("FATAL: Server stopped", slog.String("error", err.Error()))
		panic(err)
	}
}
