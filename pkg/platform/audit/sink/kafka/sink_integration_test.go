//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "custodian/pkg/platform/audit"
	"custodian/pkg/testutil/containers"
)

func TestSinkPublishesToTopic(t *testing.T) {
	broker := containers.NewKafkaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sink, err := New(ctx, Config{
		Brokers:      broker.Brokers,
		Topic:        "audit-test",
		PseudonymKey: []byte("secret"),
	})
	require.NoError(t, err)
	defer sink.Close()

	event := audit.Prepare(audit.Event{Action: "access_request", EntityID: "subject-1", Success: true}, 1, "", time.Now())
	require.NoError(t, sink.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics("audit-test"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)

	var payload Payload
	require.NoError(t, json.Unmarshal(records[0].Value, &payload))
	require.Equal(t, event.ID.String(), payload.ID)
	require.NotEqual(t, "subject-1", string(records[0].Key))
}
