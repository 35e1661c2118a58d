package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/agentcommerce/lib/mycache"
	"github.com/MarcGrol/agentcommerce/lib/myconfig"
	"github.com/MarcGrol/agentcommerce/lib/myhttp"
	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mymetrics"
	"github.com/MarcGrol/agentcommerce/lib/mypublisher"
	"github.com/MarcGrol/agentcommerce/lib/mypubsub"
	"github.com/MarcGrol/agentcommerce/lib/myqueue"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
	"github.com/MarcGrol/agentcommerce/lib/myvault"
	"github.com/MarcGrol/agentcommerce/services/acp"
	"github.com/MarcGrol/agentcommerce/services/adapters"
	"github.com/MarcGrol/agentcommerce/services/catalog"
	"github.com/MarcGrol/agentcommerce/services/checkout"
	"github.com/MarcGrol/agentcommerce/services/health"
	"github.com/MarcGrol/agentcommerce/services/tenant"
	"github.com/MarcGrol/agentcommerce/services/ucp"
)

const shutdownTimeout = 10 * time.Second

type endpointRegistrar interface {
	RegisterEndpoints(c context.Context, router *mux.Router) error
}

func main() {
	c, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := mylog.New("main")
	config := myconfig.Load()
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	metrics := mymetrics.New()

	router := mux.NewRouter()
	router.Use(myhttp.RequestUIDMiddleware(uuider))
	router.Use(metrics.Middleware)
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	cache, cacheCleanup, err := mycache.New(c, config.RedisURL, nower)
	if err != nil {
		log.Fatalf("Error creating cache: %s", err)
	}
	defer cacheCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	// tenants and their platforms
	tenantStore, tenantStoreCleanup, err := mystore.New[tenant.Tenant](c)
	if err != nil {
		log.Fatalf("Error creating tenant store: %s", err)
	}
	defer tenantStoreCleanup()

	registry := adapters.NewRegistry(myhttpclient.New(mylog.New("adapters")), nower, uuider, mylog.New("adapters"))
	tenantService := tenant.NewService(tenantStore, cache, myvault.New(config.EncryptionKey), registry, nower, uuider)

	// catalog
	productStore, productStoreCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	catalogService := catalog.NewService(productStore, cache, tenantService, queue, pubsub, publicBaseURL(config), nower, uuider)
	tenantService.SetSyncScheduler(catalogService)

	// checkouts, orders and their audit trail
	checkoutStore, checkoutStoreCleanup, err := mystore.New[checkout.Checkout](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}
	defer checkoutStoreCleanup()

	orderStore, orderStoreCleanup, err := mystore.New[checkout.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	eventStore, eventStoreCleanup, err := mystore.New[checkout.CheckoutEvent](c)
	if err != nil {
		log.Fatalf("Error creating checkout event store: %s", err)
	}
	defer eventStoreCleanup()

	checkoutService := checkout.NewService(checkoutStore, orderStore, eventStore, catalogService, tenantService,
		publisher, metrics, config.CheckoutExpiryMinutes, nower, uuider)
	err = checkoutService.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating checkout topics: %s", err)
	}

	var database mystore.Pinger
	if pinger, ok := checkoutStore.(mystore.Pinger); ok {
		database = pinger
	}

	for _, registrar := range []endpointRegistrar{
		tenant.NewWebService(tenantService),
		catalog.NewWebService(catalogService),
		acp.NewWebService(checkoutService, catalogService, tenantService),
		ucp.NewWebService(checkoutService, catalogService, tenantService),
		health.NewService(database, cache, nower),
	} {
		err = registrar.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering endpoints: %s", err)
		}
	}

	provisionDemoTenant(c, logger, config, tenantService, catalogService)

	startWebServerBlocking(c, logger, config.Port, router)

	// pending audit writes and platform pushes
	checkoutService.Drain()
}

func publicBaseURL(config myconfig.Config) string {
	if config.PublicBaseURL != "" {
		return config.PublicBaseURL
	}
	return fmt.Sprintf("http://localhost:%s", config.Port)
}

func provisionDemoTenant(c context.Context, logger mylog.Logger, config myconfig.Config, tenants *tenant.Service, products *catalog.Service) {
	if config.DemoTenant.APIKey == "" {
		return
	}

	demo, err := tenants.EnsureDemoTenant(c, config.DemoTenant)
	if err != nil {
		logger.Log(c, "", mylog.SeverityError, "Error provisioning demo tenant: %s", err)
		return
	}

	result, err := products.SyncFromAdapter(c, demo.ID)
	if err != nil {
		logger.Log(c, demo.ID, mylog.SeverityWarn, "Error syncing catalog of demo tenant %s: %s", demo.ID, err)
		return
	}
	logger.Log(c, demo.ID, mylog.SeverityInfo, "Demo tenant %s ready with %d new and %d updated products",
		demo.ID, result.Created, result.Updated)
}

func startWebServerBlocking(c context.Context, logger mylog.Logger, port string, router *mux.Router) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-c.Done()
		shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownContext)
		if err != nil {
			logger.Log(shutdownContext, "", mylog.SeverityError, "Error shutting down webserver: %s", err)
		}
	}()

	logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
