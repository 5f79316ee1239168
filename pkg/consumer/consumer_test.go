package consumer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/patnametro/pkg/helpline"
	"github.com/travigo/patnametro/pkg/lostfound"
)

func TestQueueConsumers(t *testing.T) {
	consumers := QueueConsumers(&lostfound.MemoryLostItemRepository{}, &helpline.MemoryFeedbackRepository{})
	require.Len(t, consumers, 2)

	assert.Equal(t, "lost-found-queue", consumers[0].QueueName)
	assert.IsType(t, &lostfound.ReportBatchConsumer{}, consumers[0].Consumer)

	assert.Equal(t, "feedback-queue", consumers[1].QueueName)
	assert.IsType(t, &helpline.FeedbackBatchConsumer{}, consumers[1].Consumer)
}

func TestRunStopsWithContext(t *testing.T) {
	connection := rmq.NewTestConnection()
	consumers := QueueConsumers(&lostfound.MemoryLostItemRepository{}, &helpline.MemoryFeedbackRepository{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, connection, consumers)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumers did not stop")
	}
}

func TestReturnRejected(t *testing.T) {
	miniRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: miniRedis.Addr()})

	connection, err := rmq.OpenConnectionWithRedisClient("consumer-test", client, nil)
	require.NoError(t, err)

	queue, err := connection.OpenQueue(lostfound.QueueName)
	require.NoError(t, err)

	require.NoError(t, queue.StartConsuming(10, 10*time.Millisecond))

	rejected := make(chan struct{}, 1)
	_, err = queue.AddConsumerFunc("reject", func(delivery rmq.Delivery) {
		assert.NoError(t, delivery.Reject())
		rejected <- struct{}{}
	})
	require.NoError(t, err)

	require.NoError(t, queue.Publish(`{"Identifier":"LF12345"}`))

	select {
	case <-rejected:
	case <-time.After(5 * time.Second):
		t.Fatal("delivery was not consumed")
	}
	<-queue.StopConsuming()

	stats, err := connection.CollectStats([]string{lostfound.QueueName})
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.QueueStats[lostfound.QueueName].RejectedCount)
	assert.EqualValues(t, 0, stats.QueueStats[lostfound.QueueName].ReadyCount)

	returnRejected(connection, []string{lostfound.QueueName})

	stats, err = connection.CollectStats([]string{lostfound.QueueName})
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.QueueStats[lostfound.QueueName].RejectedCount)
	assert.EqualValues(t, 1, stats.QueueStats[lostfound.QueueName].ReadyCount)
}

func TestHealthHandler(t *testing.T) {
	healthy := NewHealthHandler(func(ctx context.Context) error { return nil })

	recorder := httptest.NewRecorder()
	healthy.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())

	unhealthy := NewHealthHandler(
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return errors.New("redis down") },
	)

	recorder = httptest.NewRecorder()
	unhealthy.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "redis down", recorder.Body.String())
}
