package ucp

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
		logger:        mylog.New("ucp"),
		checkouts:     checkouts,
		catalog:       catalog,
		authenticator: authenticator,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	subRouter := router.PathPrefix("/ucp/v1").Subrouter()
	subRouter.Use(tenant.Middleware(s.authenticator))

	subRouter.HandleFunc("/capabilities", s.getCapabilities()).Methods("GET")
	subRouter.HandleFunc("/catalog", s.searchCatalog()).Methods("GET")
	subRouter.HandleFunc("/carts", s.createCart()).Methods("POST")
	subRouter.HandleFunc("/carts/{cartID}", s.getCart()).Methods("GET")
	subRouter.HandleFunc("/carts/{cartID}", s.updateCart()).Methods("PUT")
	subRouter.HandleFunc("/orders", s.createOrder()).Methods("POST")
	subRouter.HandleFunc("/orders/{orderID}", s.getOrder()).Methods("GET")

	return nil
}

func tenantOf(c context.Context) (tenant.Tenant, error) {
	t, found := tenant.FromContext(c)
	if !found {
		return tenant.Tenant{}, myerrors.NewAuthenticationError(fmt.Errorf("Missing tenant"))
	}
	return t, nil
}

func (s *webService) getCapabilities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, capabilitiesOf(t))
	}
}

func (s *webService) searchCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		query := catalogQuery{}
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

		errorWriter.Write(c, w, http.StatusOK, catalogResponseOf(page))
	}
}

func (s *webService) createCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		req := createCartRequest{}
		err = myhttp.DecodeJSONBody(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Create(c, t, checkout.ProtocolUCP, checkout.CreateRequest{
			Items: itemRefsOf(req.Items),
		})
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, cartResponseOf(view))
	}
}

func (s *webService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Get(c, t, checkout.ProtocolUCP, mux.Vars(r)["cartID"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(view))
	}
}

func (s *webService) updateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		req := updateCartRequest{}
		err = myhttp.DecodeJSONBody(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		view, err := s.checkouts.Update(c, t, checkout.ProtocolUCP, mux.Vars(r)["cartID"], checkout.UpdateRequest{
			Items:            itemRefsOf(req.Items),
			Address:          req.ShippingAddress.toAddress(),
			ShippingOptionID: req.ShippingMethodID,
		})
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cartResponseOf(view))
	}
}

func (s *webService) createOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		req := createOrderRequest{}
		err = myhttp.DecodeJSONBody(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		completion, err := s.checkouts.Complete(c, t, checkout.ProtocolUCP, req.CartID, req.PaymentToken)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}
		if !completion.OrderCreated {
			errorWriter.WriteError(c, w,
				myerrors.NewInternalError(fmt.Errorf("Cart %s completed but no order was created", req.CartID)))
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, orderResponseOf(completion.Order))
	}
}

func (s *webService) getOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		t, err := tenantOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		order, err := s.checkouts.GetOrder(c, t, checkout.ProtocolUCP, mux.Vars(r)["orderID"])
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orderResponseOf(order))
	}
}
