package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleEvent() OrderPlaced {
	return NewOrderPlaced(&models.Order{
		ID:          "order-1",
		UserID:      "user-1",
		TotalAmount: 250,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: "a", Quantity: 2, Price: 100},
			{ProductID: "b", Quantity: 1, Price: 50},
		},
	})
}

func TestNewOrderPlacedCopiesLines(t *testing.T) {
	event := sampleEvent()
	assert.Equal(t, "order-1", event.OrderID)
	assert.Equal(t, 250.0, event.TotalAmount)
	assert.Equal(t, []OrderLine{
		{ProductID: "a", Quantity: 2, Price: 100},
		{ProductID: "b", Quantity: 1, Price: 50},
	}, event.Items)
}

func TestKafkaPublisherSendsKeyedMessage(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "storefront.orders" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "order-1" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "storefront.orders", zap.NewNop())
	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherReturnsSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "storefront.orders", zap.NewNop())
	err := pub.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

type countingPublisher struct {
	calls atomic.Int32
	err   error
}

func (p *countingPublisher) Publish(context.Context, OrderPlaced) error {
	p.calls.Add(1)
	return p.err
}

func TestFanoutReachesEverySinkAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &countingPublisher{}
	failing := &countingPublisher{err: boom}

	err := Fanout{ok, failing, Nop{}}.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, ok.calls.Load())
	assert.EqualValues(t, 1, failing.calls.Load())

	assert.NoError(t, Fanout{ok}.Publish(context.Background(), sampleEvent()))
}

func TestHubBroadcastsToListeners(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Publish(context.Background(), sampleEvent()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got OrderPlaced
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "order-1", got.OrderID)
	assert.Len(t, got.Items, 2)
}

func TestHubForgetsDisconnectedListeners(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubPublishesConcurrentlyToEveryListener(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	var conns []*websocket.Conn
	for i := 0; i < 2; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()
		conns = append(conns, conn)
	}
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	const publishes = 20
	var wg sync.WaitGroup
	for i := 0; i < publishes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, hub.Publish(context.Background(), sampleEvent()))
		}()
	}
	wg.Wait()

	for _, conn := range conns {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		for i := 0; i < publishes; i++ {
			_, data, err := conn.ReadMessage()
			require.NoError(t, err)
			assert.Contains(t, string(data), "order-1")
		}
	}
	assert.Equal(t, 2, hub.Clients())
}
