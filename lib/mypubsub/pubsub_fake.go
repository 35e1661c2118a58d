package mypubsub

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

// inMemoryPubSub delivers synchronously to push subscribers within this process.
type inMemoryPubSub struct {
	sync.Mutex
	sender        myhttpclient.HTTPSender
	logger        mylog.Logger
	topics        map[string]bool
	subscriptions map[string][]string
	published     map[string][]string
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" && os.Getenv("KAFKA_BROKERS") == "" {
		New = newInMemoryPubSub
	}
}

func newInMemoryPubSub(c context.Context) (PubSub, func(), error) {
	logger := mylog.New("pubsub")
	return newInMemoryPubSubWith(myhttpclient.New(logger), logger), func() {}, nil
}

func newInMemoryPubSubWith(sender myhttpclient.HTTPSender, logger mylog.Logger) *inMemoryPubSub {
	return &inMemoryPubSub{
		sender:        sender,
		logger:        logger,
		topics:        map[string]bool{},
		subscriptions: map[string][]string{},
		published:     map[string][]string{},
	}
}

func (ps *inMemoryPubSub) Subscribe(c context.Context, topic string, urlToPostTo string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true
	ps.subscriptions[topic] = append(ps.subscriptions[topic], urlToPostTo)
	return nil
}

func (ps *inMemoryPubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true
	return nil
}

func (ps *inMemoryPubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	ps.published[topic] = append(ps.published[topic], data)
	messageID := fmt.Sprintf("%s-%d", topic, len(ps.published[topic]))
	subscribers := append([]string{}, ps.subscriptions[topic]...)
	ps.Unlock()

	for _, url := range subscribers {
		err := push(c, ps.sender, url, topic, messageID, []byte(data))
		if err != nil {
			// a failing subscriber must not block the outbox
			ps.logger.Log(c, "", mylog.SeverityWarn, "Error pushing %s to %s: %s", messageID, url, err)
		}
	}
	return nil
}

func (ps *inMemoryPubSub) Published(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.published[topic]...)
}
