package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

const (
	defaultTimeout = 10 * time.Second
	maxResponse    = 10 << 20
)

type jsonHTTPClient struct {
	client *http.Client
	logger mylog.Logger
}

// New returns a sender that defaults to json content negotiation.
func New(logger mylog.Logger) HTTPSender {
	return &jsonHTTPClient{
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

func (s *jsonHTTPClient) Send(c context.Context, req Request) (Response, error) {
	httpReq, err := http.NewRequestWithContext(c, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, fmt.Errorf("error creating http request for %s %s: %s", req.Method, req.URL, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	reqDump, err := httputil.DumpRequestOut(httpReq, false)
	if err == nil {
		s.logger.Log(c, "", mylog.SeverityDebug, "HTTP-req:\n%s", string(reqDump))
	}

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("error sending %s %s: %w", req.Method, req.URL, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponse))
	if err != nil {
		return Response{}, fmt.Errorf("error reading response %s %s: %s", req.Method, req.URL, err)
	}

	s.logger.Log(c, "", mylog.SeverityDebug, "HTTP-resp: %s %s -> %d (%d bytes)", req.Method, req.URL, httpResp.StatusCode, len(respPayload))

	return Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respPayload,
	}, nil
}
