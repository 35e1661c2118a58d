package catalog

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
	"github.com/MarcGrol/agentcommerce/lib/myhttp"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/services/checkout/checkoutevents"
)

type webService struct {
	logger  mylog.Logger
	service *Service
}

func NewWebService(service *Service) *webService {
	return &webService{
		logger:  mylog.New("catalog"),
		service: service,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// Called by the task queue
	router.HandleFunc("/tasks/catalog/{tenantID}/sync", s.syncTask()).Methods("PUT")

	// Pushed by pubsub
	router.HandleFunc("/catalog/event", s.handleEventEnvelope()).Methods("POST")

	return s.service.Subscribe(c)
}

type syncResponse struct {
	Created    int                 `json:"created"`
	Updated    int                 `json:"updated"`
	Deleted    int                 `json:"deleted"`
	Failed     int                 `json:"failed"`
	Errors     []syncErrorResponse `json:"errors"`
	DurationMs int64               `json:"durationMs"`
}

type syncErrorResponse struct {
	ExternalID string `json:"externalId"`
	Error      string `json:"error"`
}

func (s *webService) syncTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		result, err := s.service.SyncFromAdapter(c, mux.Vars(r)["tenantID"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		resp := syncResponse{
			Created:    result.Created,
			Updated:    result.Updated,
			Deleted:    result.Deleted,
			Failed:     result.Failed,
			Errors:     []syncErrorResponse{},
			DurationMs: result.Duration.Milliseconds(),
		}
		for _, e := range result.Errors {
			resp.Errors = append(resp.Errors, syncErrorResponse{ExternalID: e.ExternalID, Error: e.Error})
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}
