package mypubsub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MarcGrol/agentcommerce/lib/myhttpclient"
	"github.com/MarcGrol/agentcommerce/lib/mylog"
)

const consumerGroup = "agentcommerce-push"

type kafkaPubSub struct {
	sync.Mutex
	brokers []string
	writer  *kafka.Writer
	readers []*kafka.Reader
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
	root    context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func init() {
	if os.Getenv("KAFKA_BROKERS") != "" {
		New = newKafkaPubSub
	}
}

func newKafkaPubSub(c context.Context) (PubSub, func(), error) {
	brokers := []string{}
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, nil, fmt.Errorf("no kafka brokers configured")
	}

	logger := mylog.New("pubsub")
	root, cancel := context.WithCancel(context.WithoutCancel(c))

	ps := &kafkaPubSub{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		sender: myhttpclient.New(logger),
		logger: logger,
		root:   root,
		cancel: cancel,
	}
	return ps, ps.close, nil
}

func (ps *kafkaPubSub) close() {
	ps.cancel()
	ps.wg.Wait()

	ps.Lock()
	defer ps.Unlock()
	for _, r := range ps.readers {
		r.Close()
	}
	ps.writer.Close()
}

func (ps *kafkaPubSub) CreateTopic(c context.Context, topic string) error {
	conn, err := kafka.DialContext(c, "tcp", ps.brokers[0])
	if err != nil {
		return fmt.Errorf("error connecting to kafka: %s", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("error finding kafka controller: %s", err)
	}
	controllerConn, err := kafka.DialContext(c, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("error connecting to kafka controller: %s", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("error creating topic %s: %s", topic, err)
	}
	return nil
}

func (ps *kafkaPubSub) Publish(c context.Context, topic string, data string) error {
	err := ps.writer.WriteMessages(c, kafka.Message{
		Topic: topic,
		Key:   []byte(topic),
		Value: []byte(data),
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("error publishing event on topic %s: %s", topic, err)
	}
	return nil
}

func (ps *kafkaPubSub) Subscribe(c context.Context, topic string, urlToPostTo string) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  ps.brokers,
		Topic:    topic,
		GroupID:  consumerGroup + "-" + topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	ps.Lock()
	ps.readers = append(ps.readers, reader)
	ps.Unlock()

	// consumers live until close, not until the subscribing request ends
	ps.wg.Add(1)
	go func() {
		defer ps.wg.Done()
		ps.consume(ps.root, reader, topic, urlToPostTo)
	}()
	return nil
}

func (ps *kafkaPubSub) consume(c context.Context, reader *kafka.Reader, topic string, url string) {
	for {
		msg, err := reader.FetchMessage(c)
		if err != nil {
			if c.Err() == nil {
				ps.logger.Log(c, "", mylog.SeverityError, "Error reading topic %s: %s", topic, err)
			}
			return
		}

		messageID := fmt.Sprintf("%s-%d-%d", topic, msg.Partition, msg.Offset)
		err = push(c, ps.sender, url, topic, messageID, msg.Value)
		if err != nil {
			// not committed: redelivered after restart
			ps.logger.Log(c, "", mylog.SeverityWarn, "Error pushing %s to %s: %s", messageID, url, err)
			continue
		}

		err = reader.CommitMessages(c, msg)
		if err != nil {
			ps.logger.Log(c, "", mylog.SeverityWarn, "Error committing %s: %s", messageID, err)
		}
	}
}
