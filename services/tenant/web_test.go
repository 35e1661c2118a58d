package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/mycache"
	"github.com/MarcGrol/agentcommerce/lib/myconfig"
	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
	"github.com/MarcGrol/agentcommerce/lib/mystore"
	"github.com/MarcGrol/agentcommerce/lib/mytime"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
	"github.com/MarcGrol/agentcommerce/lib/myvault"
	"github.com/MarcGrol/agentcommerce/services/adapters"
)

const demoKey = "agx_demo"

var (
	activeTenant    = Tenant{ID: "tnt_1", Name: "Acme", Platform: adapters.PlatformCustom, APIKey: demoKey, Status: StatusActive}
	suspendedTenant = Tenant{ID: "tnt_2", Name: "Gone", Platform: adapters.PlatformCustom, APIKey: "agx_suspended", Status: StatusSuspended}
)

func TestAuthentication(t *testing.T) {

	t.Run("Missing api key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doWebhook(router, "", "/webhooks/custom")

		// then
		assert.Equal(t, http.StatusUnauthorized, response.Code)
		assert.JSONEq(t, `{"success":false,"error":{"code":"AUTHENTICATION_ERROR","message":"Missing X-API-Key header"}}`, response.Body.String())
	})

	t.Run("Unknown api key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doWebhook(router, "agx_unknown", "/webhooks/custom")

		// then
		assert.Equal(t, http.StatusUnauthorized, response.Code)
		assert.Contains(t, response.Body.String(), "Invalid API key")
	})

	t.Run("Suspended tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, router, store, _, _ := setup(t, ctrl)
		_ = store.Put(ctx, suspendedTenant.ID, suspendedTenant)

		// when
		response := doWebhook(router, suspendedTenant.APIKey, "/webhooks/custom")

		// then
		assert.Equal(t, http.StatusUnauthorized, response.Code)
		assert.Contains(t, response.Body.String(), "Account is suspended")
	})

	t.Run("Tenant is cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, _, store, service, _ := setup(t, ctrl)
		_ = store.Put(ctx, activeTenant.ID, activeTenant)
		_, err := service.Authenticate(ctx, demoKey)
		assert.NoError(t, err)
		delete(store.Items, activeTenant.ID)

		// when
		tenant, err := service.Authenticate(ctx, demoKey)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "tnt_1", tenant.ID)
	})
}

func TestWebhooks(t *testing.T) {

	t.Run("Webhook of the connected platform", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, router, store, _, _ := setup(t, ctrl)
		_ = store.Put(ctx, activeTenant.ID, activeTenant)

		// when
		response := doWebhook(router, demoKey, "/webhooks/custom")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"received":true,"event":"unknown","processed":false}`, response.Body.String())
	})

	t.Run("Webhook of another platform", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, router, store, _, _ := setup(t, ctrl)
		_ = store.Put(ctx, activeTenant.ID, activeTenant)

		// when
		response := doWebhook(router, demoKey, "/webhooks/shopify")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "Tenant is connected to CUSTOM, not SHOPIFY")
	})
}

func TestAdapterResolution(t *testing.T) {

	t.Run("Unreadable credentials fall back to demo mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, _, _, service, _ := setup(t, ctrl)
		tenant := Tenant{ID: "tnt_3", Platform: adapters.PlatformShopify, PlatformConfig: "garbage", Status: StatusActive}

		// when
		adapter := service.AdapterFor(ctx, tenant)

		// then
		assert.Equal(t, adapters.PlatformMock, adapter.Platform())
	})

	t.Run("Connected platform credentials are sealed and used", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, _, store, service, _ := setup(t, ctrl)
		_ = store.Put(ctx, activeTenant.ID, activeTenant)

		// when
		tenant, err := service.ConnectPlatform(ctx, activeTenant.ID, adapters.PlatformShopify, adapters.Credentials{Shop: "acme.myshopify.com", AccessToken: "shpat_1"})

		// then
		assert.NoError(t, err)
		assert.NotContains(t, tenant.PlatformConfig, "shpat_1")
		assert.Equal(t, mytime.ExampleTime, tenant.PlatformConnectedAt)

		adapter := service.AdapterFor(ctx, tenant)
		assert.Equal(t, adapters.PlatformShopify, adapter.Platform())
		assert.True(t, adapter.IsConnected())
	})

	t.Run("Connect with invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, _, store, service, _ := setup(t, ctrl)
		_ = store.Put(ctx, activeTenant.ID, activeTenant)

		// when
		_, err := service.ConnectPlatform(ctx, activeTenant.ID, adapters.PlatformWooCommerce, adapters.Credentials{})

		// then
		assert.EqualError(t, err, "status: 400, err: Failed to connect to WOOCOMMERCE: woocommerce credentials require storeUrl")
	})
}

func TestDemoTenant(t *testing.T) {

	t.Run("Created once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ctx, _, store, service, _ := setup(t, ctrl)
		demo := myconfig.DemoTenant{Name: "Demo Store", APIKey: demoKey, Platform: "custom"}

		// when
		first, err1 := service.EnsureDemoTenant(ctx, demo)
		second, err2 := service.EnsureDemoTenant(ctx, demo)

		// then
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, adapters.PlatformCustom, first.Platform)
		assert.Len(t, store.Items, 1)
	})
}

func doWebhook(router *mux.Router, apiKey string, path string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(`{"id":1}`))
	if apiKey != "" {
		request.Header.Set(APIKeyHeader, apiKey)
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mystore.InMemoryStore[Tenant], *Service, *MockSyncScheduler) {
	c := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("0a1b2c3d-0000-0000-0000-000000000001").AnyTimes()

	store, _, _ := mystore.NewInMemoryStore[Tenant](c)
	registry := adapters.NewRegistry(myhttpclient.NewMockHTTPSender(ctrl), nower, uuider, mylog.New("adapters"))
	service := NewService(store, mycache.NewInMemoryCache(nower), myvault.New("test-secret"), registry, nower, uuider)
	scheduler := NewMockSyncScheduler(ctrl)
	service.SetSyncScheduler(scheduler)

	router := mux.NewRouter()
	err := NewWebService(service).RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, store, service, scheduler
}
