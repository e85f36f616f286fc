package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/scicalc-demo/modules/api"
	"github.com/example/scicalc-demo/modules/calculator"
	"github.com/example/scicalc-demo/modules/history"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("PORT", 3000)
	natsPort := getEnvInt("NATS_PORT", 4222)
	storeKind := getEnv("CALC_STORE", calculator.StoreMemory)
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	sessionTTL := getEnvDuration("CALC_SESSION_TTL", 24*time.Hour)
	historyPath := getEnv("HISTORY_DB_PATH", "scicalc_history.db")
	historyDebug := getEnv("HISTORY_DB_DEBUG", "") == "true"

	logLevel := mono.LogLevelInfo
	if strings.EqualFold(getEnv("LOG_LEVEL", "info"), "error") {
		logLevel = mono.LogLevelError
	}

	log.Println("=== Scientific Calculator Demo ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("NATS Port: %d", natsPort)
	log.Printf("Session Store: %s", storeKind)
	if storeKind == calculator.StoreRedis {
		log.Printf("Redis Address: %s", redisAddr)
	}
	log.Printf("History Database: %s", historyPath)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithNATSPort(natsPort),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	calcModule := calculator.NewModule(calculator.Config{
		Store:      storeKind,
		RedisAddr:  redisAddr,
		SessionTTL: sessionTTL,
	}, app.Logger())
	historyModule := history.NewModule(historyPath, historyDebug, app.Logger())

	// Register modules
	// Order: providers first, then the HTTP API that depends on them
	app.Register(calcModule)              // Sessions + CalculationCompleted emitter
	app.Register(historyModule)           // CalculationCompleted consumer
	app.Register(api.NewModule(httpPort)) // Depends on calculator and history

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(httpPort)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  POST   /api/v1/sessions              - Create a calculator session")
	log.Println("  GET    /api/v1/sessions/:id          - Get session state")
	log.Println("  POST   /api/v1/sessions/:id/keys     - Press keys {\"keys\": [\"7\", \"+\", \"3\", \"=\"]}")
	log.Println("  GET    /api/v1/sessions/:id/history  - List computations (?limit=50)")
	log.Println("  DELETE /api/v1/sessions/:id/history  - Clear a session's history")
	log.Println("  DELETE /api/v1/sessions/:id          - Delete session and its history")
	log.Println("  GET    /api/v1/keypad                - Keypad layout (?scientific=true)")
	log.Println("  GET    /health                       - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as time.Duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
