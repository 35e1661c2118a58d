package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

func TestSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Echo-Token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	}))
	defer server.Close()

	sender := New(mylog.New("test"))

	t.Run("Round trip", func(t *testing.T) {
		// when
		resp, err := sender.Send(context.Background(), Request{
			Method:  http.MethodPost,
			URL:     server.URL,
			Headers: map[string]string{"Authorization": "Bearer abc"},
			Body:    []byte(`{"hello":"world"}`),
		})

		// then
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Bearer abc", resp.Headers.Get("X-Echo-Token"))
		assert.Equal(t, `{"hello":"world"}`, string(resp.Body))
	})

	t.Run("Unreachable", func(t *testing.T) {
		_, err := sender.Send(context.Background(), Request{Method: http.MethodGet, URL: "http://127.0.0.1:1"})
		assert.Error(t, err)
	})
}
