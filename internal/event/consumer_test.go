package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	sent []InvoiceEvent
	err  error
}

func (s *stubSender) SendInvoiceEmail(evt InvoiceEvent) error {
	s.sent = append(s.sent, evt)
	return s.err
}

func TestConsumeLoopReturnsWhenChannelCloses(t *testing.T) {
	c := &Consumer{sender: &stubSender{}}
	msgs := make(chan amqp.Delivery)
	close(msgs)

	done := make(chan error, 1)
	go func() { done <- c.consumeLoop(context.Background(), msgs) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
	case <-time.After(time.Second):
		t.Fatal("consume loop did not stop on closed delivery channel")
	}
}

func TestConsumeLoopStopsOnContextCancel(t *testing.T) {
	c := &Consumer{sender: &stubSender{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.consumeLoop(ctx, make(chan amqp.Delivery))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessMessageDeliversEmail(t *testing.T) {
	sender := &stubSender{}
	c := &Consumer{sender: sender}

	evt := InvoiceEvent{
		Type:        TypeInvoiceCreated,
		InvoiceID:   "inv-1",
		ClientEmail: "jane@example.test",
	}
	body, err := json.Marshal(evt)
	require.NoError(t, err)

	require.NoError(t, c.processMessage(amqp.Delivery{Body: body}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "inv-1", sender.sent[0].InvoiceID)
}

func TestProcessMessageSkipsMissingClientEmail(t *testing.T) {
	sender := &stubSender{}
	c := &Consumer{sender: sender}

	body, err := json.Marshal(InvoiceEvent{Type: TypeInvoiceCreated, InvoiceID: "inv-2"})
	require.NoError(t, err)

	require.NoError(t, c.processMessage(amqp.Delivery{Body: body}))
	assert.Empty(t, sender.sent)
}

func TestProcessMessageRejectsMalformedPayload(t *testing.T) {
	c := &Consumer{sender: &stubSender{}}
	assert.Error(t, c.processMessage(amqp.Delivery{Body: []byte("not json")}))
}

func TestInvoiceQueueArgsRouteToDeadLetterQueue(t *testing.T) {
	args := invoiceQueueArgs()
	assert.Equal(t, "", args["x-dead-letter-exchange"])
	assert.Equal(t, DeadLetterQueue, args["x-dead-letter-routing-key"])
}
