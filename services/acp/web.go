package acp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/agentcommerce/lib/mycontext"
	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/myhttp"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/services/catalog"
	"github.com/MarcGrol/agentcommerce/services/checkout"
	"github.com/MarcGrol/agentcommerce/services/tenant"
)

type webService struct {
	logger        mylog.Logger
	checkouts     *checkout.Service
	catalog       *catalog.Service
	authenticator tenant.Authenticator
}

func NewWebService(checkouts *checkout.Service, catalog *catalog.Service, authenticator tenant.Authenticator) *webService {
	return &webService{
		logger:        mylog.New("acp"),
		checkouts:     checkouts,
		catalog:       catalog,
		authenticator: authenticator,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	subRouter := router.PathPrefix("/acp/v1").Subrouter()
	subRouter.Use(tenant.Middleware(s.authenticator))

	subRouter.HandleFunc("/products", s.searchProducts()).Methods("GET")
	subRouter.HandleFunc("/checkouts", s.createCheckout()).Methods("POST")
	subRouter.HandleFunc("/checkouts/{checkoutID}", s.getCheckout()).Methods("GET")
	subRouter.HandleFunc("/checkouts/{checkoutID}", s.updateCheckout()).Methods("PUT")
	subRouter.HandleFunc("/checkouts/{checkoutID}/complete", s.completeCheckout()).Methods("POST")
	subRouter.HandleFunc("/checkouts/{checkoutID}", s.cancelCheckout()).Methods("DELETE")

	return nil
}

func tenantOf(c context.Context) (tenant.Tenant, error) {
	t, found := tenant.FromContext(c)
	if !found {
		return tenant.Tenant{}, myerrors.NewAuthenticationError(fmt.Errorf("Missing tenant"))
	}
	return t, nil
}

func (s *webService) searchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		query := productsQuery{}
		err = myhttp.DecodeQuery(r, &query)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		page, err := s.catalog.Search(c, t.ID, query.toSearchQuery())
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, productsResponseOf(page))
	}
}

func (s *webService) createCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		req := createCheckoutRequest{}
		err = myhttp.DecodeJSONBody(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Create(c, t, checkout.ProtocolACP, checkout.CreateRequest{
			Items:            itemRefsOf(req.Items),
			Buyer:            req.Buyer.toBuyer(),
			Address:          req.FulfillmentAddress.toAddress(),
			ShippingOptionID: req.FulfillmentOptionID,
			Metadata:         metadataOf(req.Metadata),
		})
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, checkoutResponseOf(view))
	}
}

func (s *webService) getCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Get(c, t, checkout.ProtocolACP, mux.Vars(r)["checkoutID"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, checkoutResponseOf(view))
	}
}

func (s *webService) updateCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		req := updateCheckoutRequest{}
		err = myhttp.DecodeJSONBody(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Update(c, t, checkout.ProtocolACP, mux.Vars(r)["checkoutID"], checkout.UpdateRequest{
			Items:            itemRefsOf(req.Items),
			Buyer:            req.Buyer.toBuyer(),
			Address:          req.FulfillmentAddress.toAddress(),
			ShippingOptionID: req.FulfillmentOptionID,
		})
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, checkoutResponseOf(view))
	}
}

func (s *webService) completeCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		req := completeCheckoutRequest{}
		err = myhttp.DecodeJSONBody(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		checkoutID := mux.Vars(r)["checkoutID"]
		completion, err := s.checkouts.Complete(c, t, checkout.ProtocolACP, checkoutID, req.PaymentToken.Token)
		if err != nil {
			if myerrors.GetCode(err) == myerrors.CodeInvalidPayment {
				// declined payments are reported inside the checkout
				s.logger.Log(c, checkoutID, mylog.SeverityWarn, "Payment declined for checkout %s: %s", checkoutID, err)
				errorWriter.Write(c, w, http.StatusBadRequest,
					checkoutResponseOf(completion.View, paymentDeclinedMessage(myerrors.GetMessage(err))))
				return
			}
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, checkoutResponseOf(completion.View,
			infoMessage(fmt.Sprintf("Order confirmed! Order #%s", completion.View.Checkout.OrderNumber()))))
	}
}

func (s *webService) cancelCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Cancel(c, t, checkout.ProtocolACP, mux.Vars(r)["checkoutID"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, checkoutResponseOf(view, infoMessage("Checkout cancelled")))
	}
}
