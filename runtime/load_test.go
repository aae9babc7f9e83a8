package runtime_test

import (
	"chat-courier/contract"
	"chat-courier/mocks"
	"chat-courier/runtime"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLimiterAndController_LoadTest(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.DiscardHandler)

	const (
		numClients        = 100
		framesPerClient   = 200
		capacity          = 50
		maxPendingSends   = 4
		socketsPerClient  = 2
		expectedPerClient = capacity
	)

	limiter, err := runtime.NewRateLimiter(log, map[runtime.Category]runtime.BucketConfig{
		runtime.CategoryMessage: {Capacity: capacity, Window: time.Hour},
	})
	req.NoError(err)

	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockIMetrics(ctrl)
	metrics.EXPECT().IncDeliveryFailure().AnyTimes()
	controller := runtime.NewBackpressureController(log,
		runtime.BackpressureConfig{MaxBufferedBytes: 1 << 20, MaxPendingSends: maxPendingSends}, nil, metrics)

	transports := make([][]*mocks.MockTransport, numClients)
	for i := range transports {
		for j := 0; j < socketsPerClient; j++ {
			transport := mocks.NewMockTransport(ctrl)
			transport.EXPECT().ReadyState().Return(contract.ReadyStateOpen).AnyTimes()
			transport.EXPECT().BufferedAmount().Return(0).AnyTimes()
			transport.EXPECT().Write(gomock.Any()).DoAndReturn(func([]byte) error {
				time.Sleep(50 * time.Microsecond)
				return nil
			}).AnyTimes()
			transports[i] = append(transports[i], transport)
		}
	}

	var allowed, rejected, sent, refused atomic.Uint64
	perClient := make([]atomic.Int64, numClients)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < numClients; i++ {
		for j := 0; j < socketsPerClient; j++ {
			wg.Add(1)
			go func(clientID int, transport contract.Transport) {
				defer wg.Done()
				user := fmt.Sprintf("user-%d", clientID)
				for k := 0; k < framesPerClient/socketsPerClient; k++ {
					if !limiter.Allow(user, runtime.CategoryMessage).Allowed() {
						rejected.Add(1)
						continue
					}
					allowed.Add(1)
					perClient[clientID].Add(1)
					result := controller.SendOrFail(context.Background(), transport, []byte("frame"),
						runtime.SendMeta{UserID: user})
					if result.OK {
						sent.Add(1)
					} else {
						refused.Add(1)
					}
				}
			}(i, transports[i][j])
		}
	}
	wg.Wait()
	duration := time.Since(start)

	fmt.Printf("\n--- LOAD TEST RESULTS ---\n")
	fmt.Printf("Duration        : %v\n", duration)
	fmt.Printf("Frames allowed  : %d\n", allowed.Load())
	fmt.Printf("Frames rejected : %d (rate limited)\n", rejected.Load())
	fmt.Printf("Sends written   : %d\n", sent.Load())
	fmt.Printf("Throughput      : %.2f frames/sec\n", float64(allowed.Load()+rejected.Load())/duration.Seconds())
	fmt.Printf("-------------------------\n")

	// Buckets are shared across a user's sockets
	for i := range perClient {
		req.Equal(int64(expectedPerClient), perClient[i].Load(), "user-%d", i)
	}
	req.Equal(uint64(numClients*(framesPerClient-capacity)), rejected.Load())
	// Each socket has a single writer, so it never reaches the pending cap
	req.Zero(refused.Load())
	req.Equal(allowed.Load(), sent.Load())
	req.Equal(numClients, limiter.Len())
}
