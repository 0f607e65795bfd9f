package kafka

import (
	"Folio/internal/api/config"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisherDisabled(t *testing.T) {
	p, err := NewPublisher(config.KafkaConfig{Enable: false})
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), &Event{Type: "x"}))
	assert.NoError(t, p.Close())
}

func TestSaramaPublisherSendsKeyedJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "blog" {
			return errors.New("unexpected topic " + msg.Topic)
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return err
		}
		if ev.Type != "post.created" || ev.PostID != 42 || len(ev.Tags) != 2 || ev.OccurredAt.IsZero() {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	p := NewSaramaPublisher(producer, "blog")
	err := p.Publish(context.Background(), &Event{Type: "post.created", PostID: 42, Tags: []string{"go", "db"}})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestSaramaPublisherReturnsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewSaramaPublisher(producer, "blog")
	err := p.Publish(context.Background(), &Event{Type: "tags.cleaned", DeletedCount: 3})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
