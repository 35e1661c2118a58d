package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
)

// wooCommerceAdapter talks to the WooCommerce REST API v3.
// Only the connection is integrated, data operations are not implemented yet.
type wooCommerceAdapter struct {
	connection
	unimplemented
	sender myhttpclient.HTTPSender
}

func NewWooCommerce(sender myhttpclient.HTTPSender) Adapter {
	return &wooCommerceAdapter{
		unimplemented: unimplemented{name: "WooCommerceAdapter"},
		sender:        sender,
	}
}

func (a *wooCommerceAdapter) Platform() Platform {
	return PlatformWooCommerce
}

func (a *wooCommerceAdapter) Version() string {
	return "1.0.0"
}

func (a *wooCommerceAdapter) Connect(c context.Context, credentials Credentials) (ConnectionResult, error) {
	return a.connect(c, credentials, func(c context.Context, credentials Credentials) (ConnectionResult, error) {
		if credentials.StoreURL == "" {
			return ConnectionResult{}, fmt.Errorf("woocommerce credentials require storeUrl")
		}
		return ConnectionResult{ShopName: credentials.StoreURL}, nil
	})
}

func (a *wooCommerceAdapter) Disconnect(c context.Context) error {
	a.disconnect()
	return nil
}

type wooIndexResponse struct {
	Name string `json:"name"`
}

func (a *wooCommerceAdapter) TestConnection(c context.Context) (ConnectionResult, error) {
	return a.testConnection(c, func(c context.Context) (ConnectionResult, error) {
		credentials := a.currentCredentials()
		basicAuth := base64.StdEncoding.EncodeToString([]byte(credentials.ConsumerKey + ":" + credentials.ConsumerSecret))

		resp, err := a.sender.Send(c, myhttpclient.Request{
			Method:  http.MethodGet,
			URL:     strings.TrimSuffix(credentials.StoreURL, "/") + "/wp-json/",
			Headers: map[string]string{"Authorization": "Basic " + basicAuth},
		})
		if err != nil {
			return ConnectionResult{}, fmt.Errorf("error reaching woocommerce store %s: %w", credentials.StoreURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			return ConnectionResult{}, fmt.Errorf("woocommerce store %s rejected connection test: http-status %d", credentials.StoreURL, resp.StatusCode)
		}

		index := wooIndexResponse{}
		_ = json.Unmarshal(resp.Body, &index)
		if index.Name == "" {
			index.Name = credentials.StoreURL
		}
		return ConnectionResult{ShopName: index.Name}, nil
	})
}
