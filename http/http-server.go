package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shiplogix/backend/filestore"
	"github.com/shiplogix/backend/job"
	"github.com/shiplogix/backend/logger"
	"github.com/shiplogix/backend/subm"
)

type HttpServer struct {
	submSrvc *subm.SubmissionSrvc
	jobSrvc  *job.Service
	files    *filestore.Store
	router   *chi.Mux
}

func NewHttpServer(
	submSrvc *subm.SubmissionSrvc,
	jobSrvc *job.Service,
	files *filestore.Store,
	corsOrigins []string,
) *HttpServer {
	router := chi.NewRouter()

	httpLogger := httplog.NewLogger("shiplogix", httplog.Options{
		LogLevel:         slog.LevelInfo,
		Concise:          true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(httpLogger))
	router.Use(requestLoggerIntoContext(httpLogger.Logger))

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	server := &HttpServer{
		submSrvc: submSrvc,
		jobSrvc:  jobSrvc,
		files:    files,
		router:   router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpserver.router.ServeHTTP(w, r)
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Route("/forms/{kind}", func(r chi.Router) {
		r.Post("/", httpserver.createFormSubmission)
		r.Get("/", httpserver.listFormSubmissions)
		r.Route("/{submId}", func(r chi.Router) {
			r.Get("/", httpserver.getFormSubmission)
			r.Patch("/status", httpserver.patchReviewStatus)
			r.Delete("/", httpserver.deleteFormSubmission)
			r.Get("/file", httpserver.downloadAttachment)
		})
	})

	r.Post("/jobs", httpserver.createJob)
	r.Get("/jobs", httpserver.listJobs)
	r.Get("/jobs/{jobId}", httpserver.getJob)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// requestLoggerIntoContext lets handlers pull a request-scoped slog.Logger
// out of the context instead of holding a server-wide one.
func requestLoggerIntoContext(l *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithLogger(r.Context(),
				l.With("method", r.Method, "path", r.URL.Path))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
