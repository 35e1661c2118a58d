package mypubsub

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/agentcommerce/lib/myevents"
	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

func TestInMemoryPubSub(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Publish without subscribers", func(t *testing.T) {
		// given
		ps := newInMemoryPubSubWith(myhttpclient.NewMockHTTPSender(ctrl), mylog.New("test"))

		// when
		err := ps.Publish(context.Background(), "checkout", `{"a":1}`)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []string{`{"a":1}`}, ps.Published("checkout"))
	})

	t.Run("Publish pushes to subscriber", func(t *testing.T) {
		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		ps := newInMemoryPubSubWith(sender, mylog.New("test"))
		_ = ps.Subscribe(context.Background(), "checkout", "http://localhost:8080/events/checkout")

		sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req myhttpclient.Request) (myhttpclient.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "http://localhost:8080/events/checkout", req.URL)
				envelope, err := myevents.ParseEventEnvelope(bytes.NewReader(req.Body))
				assert.NoError(t, err)
				assert.Equal(t, "chk_1", envelope.AggregateUID)
				return myhttpclient.Response{StatusCode: http.StatusOK}, nil
			})

		// when
		err := ps.Publish(context.Background(), "checkout", `{"AggregateUID":"chk_1"}`)

		// then
		assert.NoError(t, err)
	})

	t.Run("Failing subscriber does not fail publish", func(t *testing.T) {
		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		ps := newInMemoryPubSubWith(sender, mylog.New("test"))
		_ = ps.Subscribe(context.Background(), "checkout", "http://localhost:8080/events/checkout")
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(myhttpclient.Response{}, fmt.Errorf("connection refused"))

		// when
		err := ps.Publish(context.Background(), "checkout", `{}`)

		// then
		assert.NoError(t, err)
	})
}
