package tenant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/myhttp"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/services/adapters"
)

const maxWebhookSize = 1 << 20

// Signature headers as sent by the supported platforms.
var signatureHeaders = []string{"X-Shopify-Hmac-Sha256", "X-WC-Webhook-Signature", "X-Vendure-Signature", "X-Webhook-Signature"}

type webService struct {
	logger  mylog.Logger
	service *Service
}

func NewWebService(service *Service) *webService {
	return &webService{
		logger:  mylog.New("tenant"),
		service: service,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	subRouter := router.PathPrefix("/webhooks").Subrouter()
	subRouter.Use(Middleware(s.service))
	subRouter.HandleFunc("/{platform}", s.webhookPage()).Methods("POST")

	return nil
}

type webhookResponse struct {
	Received  bool   `json:"received"`
	Event     string `json:"event"`
	Processed bool   `json:"processed"`
}

func (s *webService) webhookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		tenant, found := FromContext(c)
		if !found {
			errorWriter.WriteError(c, w, myerrors.NewAuthenticationError(fmt.Errorf("Missing tenant")))
			return
		}
		platform := adapters.Platform(strings.ToUpper(mux.Vars(r)["platform"]))

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookSize))
		if err != nil {
			errorWriter.WriteError(c, w, myerrors.NewInvalidInputError(fmt.Errorf("Error reading webhook body: %s", err)))
			return
		}

		result, err := s.service.HandleWebhook(c, tenant, platform, payload, signatureOf(r))
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, webhookResponse{
			Received:  true,
			Event:     result.Event,
			Processed: result.Processed,
		})
	}
}

func signatureOf(r *http.Request) string {
	for _, header := range signatureHeaders {
		if value := r.Header.Get(header); value != "" {
			return value
		}
	}
	return ""
}
