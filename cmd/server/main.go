package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"

	emailPkg "tatami/internal/adapters/email"
	web "tatami/internal/adapters/http"
	"tatami/internal/adapters/http/perf"
	"tatami/internal/adapters/storage"
	accountStore "tatami/internal/adapters/storage/account"
	athleteStore "tatami/internal/adapters/storage/athlete"
	eventStore "tatami/internal/adapters/storage/event"
	paymentStore "tatami/internal/adapters/storage/payment"
	registrationStore "tatami/internal/adapters/storage/registration"
	"tatami/internal/adapters/storage/systemconfig"
	unitStore "tatami/internal/adapters/storage/unit"
	"tatami/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if os.Getenv("TATAMI_ENV") != "production" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// WAL mode, foreign keys and a busy timeout keep concurrent
	// registration traffic from tripping over SQLITE_BUSY.
	dbPath := envOrDefault("TATAMI_DB_PATH", "tatami.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	evTypeStore := eventStore.NewTypeSQLiteStore(timedDB)
	evCategoryStore := eventStore.NewCategorySQLiteStore(timedDB)
	configStore := systemconfig.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:       acctStore,
		UnitStore:          unitStore.NewSQLiteStore(timedDB),
		AthleteStore:       athleteStore.NewSQLiteStore(timedDB),
		EventTypeStore:     evTypeStore,
		EventCategoryStore: evCategoryStore,
		RegistrationStore:  registrationStore.NewSQLiteStore(timedDB),
		PaymentStore:       paymentStore.NewSQLiteStore(timedDB),
		SystemConfigStore:  configStore,
	}
	settings := systemconfig.NewProvider(configStore)

	// Seed the built-in event types and their bracket catalog.
	seedCatalogDeps := orchestrators.SeedEventCatalogDeps{
		EventTypeStore:     evTypeStore,
		EventCategoryStore: evCategoryStore,
		GenerateID:         newID,
	}
	if err := orchestrators.ExecuteSeedEventCatalog(context.Background(), seedCatalogDeps); err != nil {
		log.Fatalf("failed to seed event catalog: %v", err)
	}

	// Seed the admin account from deployment configuration.
	seedAdminDeps := orchestrators.SeedAdminDeps{
		AccountStore: acctStore,
		GenerateID:   newID,
		Now:          time.Now,
	}
	adminInput := orchestrators.SeedAdminInput{
		Email:    os.Getenv("TATAMI_ADMIN_EMAIL"),
		Password: os.Getenv("TATAMI_ADMIN_PASSWORD"),
	}
	if err := orchestrators.ExecuteSeedAdminAccount(context.Background(), adminInput, seedAdminDeps); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("TATAMI_RESEND_KEY")
	emailFrom := envOrDefault("TATAMI_RESEND_FROM", "Tatami Registration <noreply@tatami.example>")
	emailReply := envOrDefault("TATAMI_REPLY_TO", "office@tatami.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("TATAMI_ENV") == "production" {
			log.Println("WARNING: TATAMI_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set TATAMI_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", stores, settings, collector)

	addr := envOrDefault("TATAMI_ADDR", ":8080")
	log.Printf("Tatami %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("TATAMI_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newID() string {
	return uuid.New().String()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
