package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
	"github.com/MarcGrol/agentcommerce/lib/myhttp"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
)

const (
	checkOK      = "ok"
	checkError   = "error"
	checkUnknown = "unknown"
)

type webService struct {
	logger   mylog.Logger
	database mystore.Pinger
	cache    mystore.Pinger
	nower    mytime.Nower
}

type Response struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewService reports on the database and the cache. A nil pinger is reported as unknown.
func NewService(database mystore.Pinger, cache mystore.Pinger, nower mytime.Nower) *webService {
	return &webService{
		logger:   mylog.New("health"),
		database: database,
		cache:    cache,
		nower:    nower,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/health", s.healthPage()).Methods("GET")
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
	return nil
}

func (s *webService) check(c context.Context, name string, pinger mystore.Pinger) string {
	if pinger == nil {
		return checkUnknown
	}
	err := pinger.Ping(c)
	if err != nil {
		s.logger.Log(c, name, mylog.SeverityWarn, "Health check %s failed: %s", name, err)
		return checkError
	}
	return checkOK
}

func (s *webService) healthPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		checks := map[string]string{
			"api":      checkOK,
			"database": s.check(c, "database", s.database),
			"cache":    s.check(c, "cache", s.cache),
		}

		// the cache is optional
		if checks["database"] != checkOK {
			writer.Write(c, w, http.StatusServiceUnavailable, Response{Status: "degraded", Checks: checks, Timestamp: s.nower.Now()})
			return
		}
		writer.Write(c, w, http.StatusOK, Response{Status: "healthy", Checks: checks, Timestamp: s.nower.Now()})
	}
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		if s.database != nil {
			err := s.database.Ping(c)
			if err != nil {
				errorWriter.WriteError(c, w, err)
				return
			}
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
