package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	aqmem "asthmacare/internal/adapters/cache/memory"
	aqredis "asthmacare/internal/adapters/cache/redis"
	filesmem "asthmacare/internal/adapters/files/memory"
	notifymem "asthmacare/internal/adapters/notify/memory"
	notifyredis "asthmacare/internal/adapters/notify/redis"
	mem "asthmacare/internal/adapters/storage/memory"
	pg "asthmacare/internal/adapters/storage/postgres"
	"asthmacare/internal/domain/accounts"
	"asthmacare/internal/domain/airquality"
	"asthmacare/internal/domain/appointments"
	"asthmacare/internal/domain/chat"
	"asthmacare/internal/domain/contacts"
	"asthmacare/internal/domain/doctors"
	"asthmacare/internal/domain/medications"
	"asthmacare/internal/domain/notifications"
	"asthmacare/internal/domain/profiles"
	"asthmacare/internal/domain/reports"
	"asthmacare/internal/domain/symptoms"
	"asthmacare/internal/middleware"
	"asthmacare/internal/platform/logger"
	"asthmacare/internal/platform/metrics"
	"asthmacare/internal/ports/auth"
	"asthmacare/internal/ports/files"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	AuthProvider auth.Provider     // puede ser nil (endpoints de auth devuelven 503)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: cache de air quality + broker de notificaciones.
	// Sin Redis, ambos quedan in-process.
	Redis *goredis.Client

	// Opcional: object storage para avatares. Sin S3, in-memory.
	Files files.Store

	// Fetcher de calidad de aire. Obligatorio para que /air-quality
	// funcione; sin él, el endpoint devuelve 503.
	AirQualityFetcher airquality.Fetcher
	CacheWindow       time.Duration

	// Responder del chat. Si es nil, se usa el mock con delays default.
	Responder chat.Responder

	// Con LoginURL, los requests sin claims a rutas protegidas se
	// redirigen al login en vez de dejar que el handler devuelva 401.
	LoginURL string

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	var (
		symptomRepo      symptoms.Repository
		medicationRepo   medications.Repository
		appointmentRepo  appointments.Repository
		chatRepo         chat.Repository
		profileRepo      profiles.Repository
		reportRepo       reports.Repository
		contactRepo      contacts.Repository
		doctorRepo       doctors.Repository
		notificationRepo notifications.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("router: postgres unavailable, falling back to memory", map[string]any{
					"err": err.Error(),
				})
			}
		}
	}

	if db != nil {
		symptomRepo = pg.NewSymptomsRepo(db)
		medicationRepo = pg.NewMedicationsRepo(db)
		appointmentRepo = pg.NewAppointmentsRepo(db)
		chatRepo = pg.NewChatRepo(db)
		profileRepo = pg.NewProfilesRepo(db)
		reportRepo = pg.NewReportsRepo(db)
		contactRepo = pg.NewContactsRepo(db)
		doctorRepo = pg.NewDoctorsRepo(db)
		notificationRepo = pg.NewNotificationsRepo(db)
	} else {
		symptomRepo = mem.NewSymptomRepository()
		medicationRepo = mem.NewMedicationRepository()
		appointmentRepo = mem.NewAppointmentRepository()
		chatRepo = mem.NewChatRepository()
		profileRepo = mem.NewProfileRepository()
		reportRepo = mem.NewReportRepository()
		contactRepo = mem.NewContactRepository()
		doctorRepo = mem.NewDoctorRepository()
		notificationRepo = mem.NewNotificationRepository()
	}

	var (
		aqStore airquality.Store
		broker  notifications.Broker
	)
	// Cache: redis > postgres > memoria, según lo que haya configurado.
	switch {
	case opts.Redis != nil:
		aqStore = aqredis.NewStore(opts.Redis)
	case db != nil:
		aqStore = pg.NewAirQualityRepo(db)
	default:
		aqStore = aqmem.NewStore()
	}

	if opts.Redis != nil {
		broker = notifyredis.NewBroker(opts.Redis, log)
	} else {
		broker = notifymem.NewBroker()
	}

	fileStore := opts.Files
	if fileStore == nil {
		fileStore = filesmem.NewStore()
	}

	responder := opts.Responder
	if responder == nil {
		responder = chat.NewMockResponder(0, 0)
	}

	fetcher := opts.AirQualityFetcher
	if fetcher == nil {
		fetcher = airquality.FetchFunc(func(context.Context, string) (json.RawMessage, error) {
			return nil, airquality.ErrNoEntry
		})
	}

	// Services por módulo
	symptomsSvc := symptoms.NewService(symptomRepo)
	medicationsSvc := medications.NewService(medicationRepo)
	notificationsSvc := notifications.NewService(notificationRepo, broker, log)
	appointmentsSvc := appointments.NewService(appointmentRepo, notificationsSvc, log)
	chatSvc := chat.NewService(chatRepo, responder, log, 50)
	profilesSvc := profiles.NewService(profileRepo, fileStore, log)
	reportsSvc := reports.NewService(reportRepo, symptomsSvc)
	contactsSvc := contacts.NewService(contactRepo)
	doctorsSvc := doctors.NewService(doctorRepo)
	airQualitySvc := airquality.NewService(aqStore, fetcher, opts.CacheWindow, log)

	sessions := accounts.NewSessions()
	accountsSvc := accounts.NewService(opts.AuthProvider, profilesSvc, sessions, log)

	// Rutas de auth fuera del guard: tienen que ser alcanzables sin sesión.
	accounts.RegisterRoutes(r, accountsSvc)

	// Rutas protegidas por owner.
	r.Group(func(pr chi.Router) {
		if opts.LoginURL != "" {
			pr.Use(middleware.RequireAuth(opts.LoginURL))
		}

		symptoms.RegisterRoutes(pr, symptomsSvc)
		medications.RegisterRoutes(pr, medicationsSvc)
		appointments.RegisterRoutes(pr, appointmentsSvc)
		chat.RegisterRoutes(pr, chatSvc)
		profiles.RegisterRoutes(pr, profilesSvc)
		reports.RegisterRoutes(pr, reportsSvc)
		contacts.RegisterRoutes(pr, contactsSvc)
		doctors.RegisterRoutes(pr, doctorsSvc)
		notifications.RegisterRoutes(pr, notificationsSvc)
		airquality.RegisterRoutes(pr, airQualitySvc)
	})

	return r
}
