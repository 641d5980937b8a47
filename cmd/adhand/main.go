// Adhan Core - Prayer Times Daemon
//
// This is the main entry point for the Adhan Core daemon. Adhan Core is a
// prayer-times engine designed for:
//   - Always-on wall panels and kiosk displays
//   - Offline-tolerant operation (stale schedules survive provider outages)
//   - Open integration surfaces (REST API, MQTT)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/fajrlabs/adhan-core/migrations"

	"github.com/fajrlabs/adhan-core/internal/api"
	"github.com/fajrlabs/adhan-core/internal/engine"
	"github.com/fajrlabs/adhan-core/internal/geocode"
	"github.com/fajrlabs/adhan-core/internal/history"
	"github.com/fajrlabs/adhan-core/internal/infrastructure/config"
	"github.com/fajrlabs/adhan-core/internal/infrastructure/database"
	"github.com/fajrlabs/adhan-core/internal/infrastructure/influxdb"
	"github.com/fajrlabs/adhan-core/internal/infrastructure/logging"
	"github.com/fajrlabs/adhan-core/internal/infrastructure/mqtt"
	"github.com/fajrlabs/adhan-core/internal/location"
	"github.com/fajrlabs/adhan-core/internal/notify"
	"github.com/fajrlabs/adhan-core/internal/provider/aladhan"
	"github.com/fajrlabs/adhan-core/internal/subscription"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Adhan Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Reminder history repository (also the notifier's dedup recorder)
	historyRepo := history.NewRepository(db)

	// Connect to MQTT broker (optional: without it reminders fall back to
	// the log sink and the subscription machine reports unsupported)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Dedup recorder: SQLite always, fanned out to InfluxDB when enabled.
	// The same client mirrors provider fetch outcomes from the engine.
	var recorder notify.Recorder = historyRepo
	var fetchWriter engine.FetchWriter
	if influxClient != nil {
		recorder = history.NewFanoutRecorder(historyRepo, influxClient)
		fetchWriter = influxClient
	}

	// Start the prayer-time engine
	eng, err := startEngine(ctx, cfg, mqttClient, recorder, fetchWriter, log)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer func() {
		log.Info("stopping engine")
		eng.Close()
	}()

	// Panels trigger test reminders over MQTT as well as over the API
	if mqttClient != nil {
		topics := mqtt.Topics{}
		subErr := mqttClient.Subscribe(topics.ReminderTest(), byte(cfg.MQTT.QoS), func(_ string, _ []byte) error {
			return eng.SendTestReminder(ctx)
		})
		if subErr != nil {
			log.Warn("subscribing to test reminder topic failed", "error", subErr)
		}
	}

	// Start the REST API server
	apiServer, err := api.New(api.Deps{
		Config:       cfg.API,
		Logger:       log,
		Engine:       eng,
		History:      historyRepo,
		HistoryLimit: cfg.Reminders.HistoryLimit,
		Version:      version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
		"tls", cfg.API.TLS.Enabled,
	)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient, apiServer); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. Engine (stops the notifier)
	// 3. InfluxDB (if enabled)
	// 4. MQTT (if enabled)
	// 5. Database

	log.Info("Adhan Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses ADHAN_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("ADHAN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// startEngine wires the schedule provider, location resolver, reminder
// stack and subscription machine into a running engine.
//
// Parameters:
//   - ctx: Context for startup/cancellation
//   - cfg: Application configuration
//   - mqttClient: MQTT client, nil when the broker is disabled
//   - recorder: Reminder dedup recorder
//   - fetchWriter: Fetch-outcome mirror, nil when InfluxDB is disabled
//   - log: Logger instance
//
// Returns:
//   - *engine.Engine: Running engine
//   - error: If the engine fails to construct or start
func startEngine(ctx context.Context, cfg *config.Config, mqttClient *mqtt.Client, recorder notify.Recorder, fetchWriter engine.FetchWriter, log *logging.Logger) (*engine.Engine, error) {
	provider := aladhan.NewClient(
		aladhan.WithBaseURL(cfg.Provider.BaseURL),
		aladhan.WithMethod(cfg.Provider.Method),
		aladhan.WithTimeout(cfg.ProviderTimeout()),
	)

	// Reverse geocoding is optional; without it new locations keep the
	// placeholder label.
	var geocoder *geocode.Client
	if cfg.Geocode.Enabled {
		geocoder = geocode.NewClient(
			geocode.WithBaseURL(cfg.Geocode.BaseURL),
			geocode.WithLocale(cfg.Geocode.Locale),
		)
	}

	// Startup coordinates come from config when pinned; otherwise the
	// resolver falls back to the fixed default location.
	var source location.Source
	if cfg.Location.Set {
		source = location.NewConfigSource(cfg.Location.Latitude, cfg.Location.Longitude)
	}
	resolverOpts := []location.ResolverOption{location.WithLogger(log)}
	var engineGeocoder engine.Geocoder
	var locationGeocoder location.Geocoder
	if geocoder != nil {
		engineGeocoder = geocoder
		locationGeocoder = geocoder
	}
	resolver := location.NewResolver(source, locationGeocoder, resolverOpts...)

	// Reminder sink and permission host ride on MQTT; without a broker
	// reminders go to the log and subscriptions are unsupported.
	var sink notify.Sink
	var host subscription.Host
	var statePub notify.Publisher
	if mqttClient != nil {
		sink = notify.NewMQTTSink(mqttClient)
		host = notify.NewMQTTHost(mqttClient)
		statePub = mqttClient
	} else {
		sink = &logSink{log: log}
	}

	machine := subscription.NewMachine(ctx, host)
	machine.SetLogger(log)

	eng, err := engine.New(engine.Options{
		Provider:        provider,
		Sink:            sink,
		Resolver:        resolver,
		Geocoder:        engineGeocoder,
		Machine:         machine,
		Recorder:        recorder,
		StatePublisher:  statePub,
		FetchWriter:     fetchWriter,
		Logger:          log,
		RefreshInterval: cfg.RefreshInterval(),
		TickInterval:    cfg.TickInterval(),
		DisplayDuration: cfg.DisplayDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	if err := eng.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting engine: %w", err)
	}
	log.Info("engine started",
		"provider", cfg.Provider.BaseURL,
		"method", cfg.Provider.Method,
		"location_pinned", cfg.Location.Set,
	)

	return eng, nil
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//   - apiServer: API server to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, apiServer *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := apiServer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}

// logSink presents reminders on the log when no MQTT broker is configured.
// It exists so a broker-less deployment can still exercise the engine and
// test-reminder paths.
type logSink struct {
	log *logging.Logger
}

// Show implements notify.Sink.
func (s *logSink) Show(_ context.Context, r notify.Reminder) (string, error) {
	s.log.Info("reminder",
		"id", r.ID,
		"title", r.Title,
		"body", r.Body,
		"test", r.Test,
	)
	return r.ID, nil
}

// Close implements notify.Sink.
func (s *logSink) Close(_ string) error {
	return nil
}
