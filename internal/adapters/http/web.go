package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"tatami/internal/adapters/email"
	"tatami/internal/adapters/http/middleware"
	"tatami/internal/adapters/http/perf"
	accountStore "tatami/internal/adapters/storage/account"
	athleteStore "tatami/internal/adapters/storage/athlete"
	eventStore "tatami/internal/adapters/storage/event"
	paymentStore "tatami/internal/adapters/storage/payment"
	registrationStore "tatami/internal/adapters/storage/registration"
	"tatami/internal/adapters/storage/systemconfig"
	unitStore "tatami/internal/adapters/storage/unit"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore       accountStore.Store
	UnitStore          unitStore.Store
	AthleteStore       athleteStore.Store
	EventTypeStore     eventStore.TypeStore
	EventCategoryStore eventStore.CategoryStore
	RegistrationStore  registrationStore.Store
	PaymentStore       paymentStore.Store
	SystemConfigStore  systemconfig.Store
}

// loadCSRFKey reads the CSRF secret from TATAMI_CSRF_KEY (hex-encoded,
// 32 bytes). In production the key MUST be set; in development a random
// key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("TATAMI_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("TATAMI_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("TATAMI_ENV") == "production" {
		log.Fatal("TATAMI_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set TATAMI_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global settings provider (set by NewMux)
var settings *systemconfig.Provider

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, provider *systemconfig.Provider, collector *perf.Collector) http.Handler {
	stores = s
	settings = provider
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("TATAMI_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Middleware order, outermost first: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
