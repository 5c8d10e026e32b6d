package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jansuraksha/jan-suraksha-api/api"
	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases"
	"github.com/jansuraksha/jan-suraksha-api/logging"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Cache    api.Cache
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	notifier := &UrgentNotifier{
		Config:   &a.Config,
		Sender:   SendGridSender{FromName: a.Config.EmailFromName, FromAddress: a.Config.EmailFromAddress},
		Attempts: logging.NewAttemptLog(a.Config.EmailLogFile, a.Config.EmailLogMaxSize, a.Config.EmailDebug),
	}

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	c := Complaint{
		DB:       databases.NewComplaintDatabase(a.dbHelper),
		Config:   &a.Config,
		Notifier: notifier,
		Evidence: EvidenceStore{Dir: a.Config.UploadDir, MaxSize: a.Config.MaxEvidenceSize},
	}
	adm := Admin{
		ADB:    databases.NewAdminDatabase(a.dbHelper),
		CDB:    databases.NewComplaintDatabase(a.dbHelper),
		Config: &a.Config,
	}
	stats := Stats{DB: databases.NewComplaintDatabase(a.dbHelper)}
	contrib := Contributors{Config: &a.Config, Cache: a.Cache}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")

	apiCreate.Handle("/complaint", api.Middleware(http.HandlerFunc(c.SubmitComplaintHandler))).Methods("POST")
	apiCreate.Handle("/complaint/anonymous", http.HandlerFunc(c.SubmitComplaintHandler)).Methods("POST")
	apiCreate.Handle("/complaint/track/{code:.+}", http.HandlerFunc(c.TrackComplaintHandler)).Methods("GET")

	apiCreate.Handle("/contributors", http.HandlerFunc(contrib.ContributorsHandler)).Methods("GET")

	apiCreate.Handle("/admin/login", http.HandlerFunc(adm.AdminLoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/complaints", api.AdminMiddleware(http.HandlerFunc(adm.ListComplaintsHandler))).Methods("GET")
	apiCreate.Handle("/admin/complaint/{id}/status", api.AdminMiddleware(http.HandlerFunc(adm.UpdateComplaintStatusHandler))).Methods("PUT")
	apiCreate.Handle("/admin/stats", api.AdminMiddleware(http.HandlerFunc(stats.DashboardStatsHandler))).Methods("GET")

	r.Handle("/ws/admin/notifications", api.AdminMiddleware(http.HandlerFunc(HandleAdminNotificationsWebSocket)))

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("jan-suraksha-api has connected to the database")

	if a.Cache == nil {
		if a.Config.RedisAddr != "" {
			a.Cache = api.NewRedisCache(a.Config.RedisAddr)
		} else {
			a.Cache = api.NewMemoryCache()
		}
	}

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// ComplaintDB exposes the complaint store for background jobs started by main
func (a *App) ComplaintDB() databases.ComplaintDatabase {
	return databases.NewComplaintDatabase(a.dbHelper)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
