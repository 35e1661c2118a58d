package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
)

const shopifyAPIVersion = "2024-10"

// shopifyAdapter talks to the Shopify Admin REST API.
// Only the connection is integrated, data operations are not implemented yet.
type shopifyAdapter struct {
	connection
	unimplemented
	sender myhttpclient.HTTPSender
}

func NewShopify(sender myhttpclient.HTTPSender) Adapter {
	return &shopifyAdapter{
		unimplemented: unimplemented{name: "ShopifyAdapter"},
		sender:        sender,
	}
}

func (a *shopifyAdapter) Platform() Platform {
	return PlatformShopify
}

func (a *shopifyAdapter) Version() string {
	return "1.0.0"
}

func (a *shopifyAdapter) Connect(c context.Context, credentials Credentials) (ConnectionResult, error) {
	return a.connect(c, credentials, func(c context.Context, credentials Credentials) (ConnectionResult, error) {
		if credentials.Shop == "" || credentials.AccessToken == "" {
			return ConnectionResult{}, fmt.Errorf("shopify credentials require shop and accessToken")
		}
		return ConnectionResult{ShopName: credentials.Shop}, nil
	})
}

func (a *shopifyAdapter) Disconnect(c context.Context) error {
	a.disconnect()
	return nil
}

type shopifyShopResponse struct {
	Shop struct {
		Name     string `json:"name"`
		PlanName string `json:"plan_name"`
	} `json:"shop"`
}

// TestConnection asks the shop endpoint whether the access token is still accepted.
func (a *shopifyAdapter) TestConnection(c context.Context) (ConnectionResult, error) {
	return a.testConnection(c, func(c context.Context) (ConnectionResult, error) {
		credentials := a.currentCredentials()
		resp, err := a.sender.Send(c, myhttpclient.Request{
			Method:  http.MethodGet,
			URL:     fmt.Sprintf("https://%s/admin/api/%s/shop.json", credentials.Shop, shopifyAPIVersion),
			Headers: map[string]string{"X-Shopify-Access-Token": credentials.AccessToken},
		})
		if err != nil {
			return ConnectionResult{}, fmt.Errorf("error reaching shopify store %s: %w", credentials.Shop, err)
		}
		if resp.StatusCode != http.StatusOK {
			return ConnectionResult{}, fmt.Errorf("shopify store %s rejected connection test: http-status %d", credentials.Shop, resp.StatusCode)
		}

		shop := shopifyShopResponse{}
		err = json.Unmarshal(resp.Body, &shop)
		if err != nil {
			return ConnectionResult{}, fmt.Errorf("error parsing shopify shop response: %s", err)
		}
		name := shop.Shop.Name
		if name == "" {
			name = credentials.Shop
		}
		return ConnectionResult{ShopName: name, Plan: shop.Shop.PlanName}, nil
	})
}
