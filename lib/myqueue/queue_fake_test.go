package myqueue

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

func TestLocalQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := myhttpclient.NewMockHTTPSender(ctrl)
	queue := newLocalQueueWith("http://localhost:9999", sender, mylog.New("test"))

	t.Run("Dispatches once per uid", func(t *testing.T) {
		// given
		done := make(chan myhttpclient.Request, 2)
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req myhttpclient.Request) (myhttpclient.Response, error) {
				done <- req
				return myhttpclient.Response{StatusCode: http.StatusOK}, nil
			}).Times(1)

		// when
		err := queue.Enqueue(context.Background(), Task{UID: "t1", WebhookURLPath: "/tasks/x", Payload: []byte("{}")})
		assert.NoError(t, err)
		err = queue.Enqueue(context.Background(), Task{UID: "t1", WebhookURLPath: "/tasks/x", Payload: []byte("{}")})
		assert.NoError(t, err)

		// then
		select {
		case req := <-done:
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "http://localhost:9999/tasks/x", req.URL)
		case <-time.After(2 * time.Second):
			t.Fatal("task not dispatched")
		}
	})
}
