package main

import (
	"chat-courier/client"
	"chat-courier/domain"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	WebsocketURL string        `envconfig:"COURIER_WS_URL" default:"ws://localhost:8080/ws"`
	UserIDHeader string        `envconfig:"COURIER_USER_ID_HEADER" default:"X-User-Id"`
	Messages     int           `envconfig:"TESTER_MESSAGES" default:"20"`
	Timeout      time.Duration `envconfig:"TESTER_TIMEOUT" default:"5s"`
}

type scenario struct {
	name string
	run  func(ctx context.Context, config Config) error
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tester error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	scenarios := []scenario{
		{"lost delivered ack is replayed once", lostAck},
		{"duplicate client message id", duplicate},
		{"burst until rate limited", burst},
	}

	failed := 0
	for _, sc := range scenarios {
		start := time.Now()
		if err := sc.run(context.Background(), config); err != nil {
			failed++
			color.Red.Printf("✗ %s: %v\n", sc.name, err)
			continue
		}
		color.Green.Printf("✓ %s (%s)\n", sc.name, time.Since(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return exitRuntime, fmt.Errorf("%d/%d scenarios failed", failed, len(scenarios))
	}
	return exitOK, nil
}

func dial(ctx context.Context, config Config, name string) (*client.Client, error) {
	return client.Dial(ctx, config.WebsocketURL, config.UserIDHeader, name+"-"+uuid.NewString()[:8])
}

func lostAck(ctx context.Context, config Config) error {
	alice, err := dial(ctx, config, "alice")
	if err != nil {
		return err
	}
	defer alice.Close()
	bob, err := dial(ctx, config, "bob")
	if err != nil {
		return err
	}
	bobID := bob.UserID

	if err := alice.Send(domain.FrameMessageSend, domain.MessageSend{
		RecipientID: bobID, Content: "hello", ClientMessageID: uuid.NewString(),
	}); err != nil {
		return err
	}
	if err := bob.Expect(domain.FrameMessageReceive, nil, config.Timeout); err != nil {
		return err
	}
	_ = bob.Close()

	bob, err = client.Dial(ctx, config.WebsocketURL, config.UserIDHeader, bobID)
	if err != nil {
		return err
	}
	defer bob.Close()
	if err := bob.Send(domain.FrameResume, domain.Resume{}); err != nil {
		return err
	}
	var done domain.ReplayDone
	if err := bob.Expect(domain.FrameReplayDone, &done, config.Timeout); err != nil {
		return err
	}
	if done.Count != 1 {
		return fmt.Errorf("expected 1 replayed message, got %d", done.Count)
	}
	if err := bob.Send(domain.FrameResume, domain.Resume{LastSeenMessageID: done.Cursor}); err != nil {
		return err
	}
	if err := bob.Expect(domain.FrameReplayDone, &done, config.Timeout); err != nil {
		return err
	}
	if done.Count != 0 {
		return fmt.Errorf("second replay returned %d messages", done.Count)
	}
	return nil
}

func duplicate(ctx context.Context, config Config) error {
	alice, err := dial(ctx, config, "alice")
	if err != nil {
		return err
	}
	defer alice.Close()

	send := domain.MessageSend{RecipientID: "nobody-" + uuid.NewString()[:8], Content: "once", ClientMessageID: uuid.NewString()}
	var acks [2]domain.MessageAck
	for i := range acks {
		if err := alice.Send(domain.FrameMessageSend, send); err != nil {
			return err
		}
		if err := alice.Expect(domain.FrameMessageAck, &acks[i], config.Timeout); err != nil {
			return err
		}
	}
	if acks[0].MessageID != acks[1].MessageID {
		return fmt.Errorf("duplicate produced a new id: %s != %s", acks[0].MessageID, acks[1].MessageID)
	}
	return nil
}

func burst(ctx context.Context, config Config) error {
	alice, err := dial(ctx, config, "alice")
	if err != nil {
		return err
	}
	defer alice.Close()

	recipient := "nobody-" + uuid.NewString()[:8]
	for i := 0; i < config.Messages; i++ {
		if err := alice.Send(domain.FrameMessageSend, domain.MessageSend{
			RecipientID: recipient, Content: i, ClientMessageID: uuid.NewString(),
		}); err != nil {
			return err
		}
	}

	var acked, limited int
	for acked+limited < config.Messages {
		frame, err := alice.Next(config.Timeout)
		if err != nil {
			return fmt.Errorf("after %d acks and %d rejections: %w", acked, limited, err)
		}
		switch frame.Type {
		case domain.FrameMessageAck:
			acked++
		case domain.FrameError:
			limited++
		}
	}
	color.Cyan.Printf("  %d accepted, %d rate limited\n", acked, limited)
	return nil
}
