package myqueue

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

const localDispatchDelay = 100 * time.Millisecond

// localTaskQueue mimics cloud-tasks by calling back into this process.
type localTaskQueue struct {
	sync.Mutex
	baseURL string
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
	seen    map[string]bool
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newLocalQueue
	}
}

func newLocalQueue(c context.Context) (TaskQueuer, func(), error) {
	logger := mylog.New("queue")
	return newLocalQueueWith(localBaseURL(), myhttpclient.New(logger), logger), func() {}, nil
}

func newLocalQueueWith(baseURL string, sender myhttpclient.HTTPSender, logger mylog.Logger) *localTaskQueue {
	return &localTaskQueue{
		baseURL: baseURL,
		sender:  sender,
		logger:  logger,
		seen:    map[string]bool{},
	}
}

func localBaseURL() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return fmt.Sprintf("http://localhost:%s", port)
}

func (q *localTaskQueue) Enqueue(c context.Context, task Task) error {
	q.Lock()
	if q.seen[task.UID] {
		q.Unlock()
		q.logger.Log(c, "", mylog.SeverityDebug, "task with id %s already exists -> ignore", task.UID)
		return nil
	}
	q.seen[task.UID] = true
	q.Unlock()

	go q.dispatch(context.WithoutCancel(c), task)

	return nil
}

func (q *localTaskQueue) dispatch(c context.Context, task Task) {
	time.Sleep(localDispatchDelay)

	resp, err := q.sender.Send(c, myhttpclient.Request{
		Method: http.MethodPut,
		URL:    q.baseURL + task.WebhookURLPath,
		Body:   task.Payload,
	})
	if err != nil {
		q.logger.Log(c, "", mylog.SeverityWarn, "Error dispatching task %s: %s", task.UID, err)
		return
	}
	if resp.StatusCode >= 300 {
		q.logger.Log(c, "", mylog.SeverityWarn, "Task %s on %s failed with status %d", task.UID, task.WebhookURLPath, resp.StatusCode)
	}
}

func (q *localTaskQueue) IsLastAttempt(c context.Context, taskUID string) (int32, int32) {
	// single attempt only
	return 1, 1
}
