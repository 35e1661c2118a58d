package mypubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/agentcommerce/lib/myevents"
	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
)

func push(c context.Context, sender myhttpclient.HTTPSender, url string, topic string, messageID string, data []byte) error {
	body, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: data,
			ID:   messageID,
		},
		Subscription: topic,
	})
	if err != nil {
		return fmt.Errorf("error marshalling push-request: %s", err)
	}

	resp, err := sender.Send(c, myhttpclient.Request{
		Method: http.MethodPost,
		URL:    url,
		Body:   body,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("push to %s rejected with status %d", url, resp.StatusCode)
	}
	return nil
}
