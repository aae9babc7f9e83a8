package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080"`
	GRPCPort        int           `env:"GRPC_PORT,default=9090"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Codec           string        `env:"CODEC,default=json"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=1s"`
	RuntimeMetrics  bool          `env:"RUNTIME_METRICS,default=true"`

	BackpressureMaxBufferedBytes int `env:"BACKPRESSURE_MAX_BUFFERED_BYTES,default=1048576"`
	BackpressureMaxPendingSends  int `env:"BACKPRESSURE_MAX_PENDING_SENDS,default=64"`

	MessageBucketCapacity int           `env:"MESSAGE_BUCKET_CAPACITY,default=30"`
	MessageBucketWindow   time.Duration `env:"MESSAGE_BUCKET_WINDOW,default=10s"`
	MessageBucketCooldown time.Duration `env:"MESSAGE_BUCKET_COOLDOWN,default=0s"`
	TypingBucketCapacity  int           `env:"TYPING_BUCKET_CAPACITY,default=10"`
	TypingBucketWindow    time.Duration `env:"TYPING_BUCKET_WINDOW,default=5s"`
	TypingBucketCooldown  time.Duration `env:"TYPING_BUCKET_COOLDOWN,default=0s"`

	ReplayDefaultLimit int `env:"REPLAY_DEFAULT_LIMIT,default=100"`
	ReplayMaxLimit     int `env:"REPLAY_MAX_LIMIT,default=500"`

	JanitorInterval   time.Duration `env:"JANITOR_INTERVAL,default=30s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=15s"`

	SendQueueSize int           `env:"SEND_QUEUE_SIZE,default=256"`
	WriteWait     time.Duration `env:"WRITE_WAIT,default=10s"`
	PongWait      time.Duration `env:"PONG_WAIT,default=60s"`
	MaxFrameBytes int64         `env:"MAX_FRAME_BYTES,default=65536"`
	UserIDHeader  string        `env:"USER_ID_HEADER,default=X-User-Id"`
}

// Validate rejects values go-env accepts but the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.BackpressureMaxBufferedBytes <= 0 || c.BackpressureMaxPendingSends <= 0:
		return fmt.Errorf("backpressure thresholds must be positive")
	case c.ReplayDefaultLimit <= 0 || c.ReplayMaxLimit < c.ReplayDefaultLimit:
		return fmt.Errorf("replay limits must satisfy 0 < default (%d) <= max (%d)",
			c.ReplayDefaultLimit, c.ReplayMaxLimit)
	case c.SendQueueSize <= 0:
		return fmt.Errorf("SEND_QUEUE_SIZE must be positive, got %d", c.SendQueueSize)
	case c.PongWait <= 0 || c.WriteWait <= 0:
		return fmt.Errorf("PONG_WAIT and WRITE_WAIT must be positive")
	case c.JanitorInterval <= 0 || c.HeartbeatInterval <= 0:
		return fmt.Errorf("worker intervals must be positive")
	}
	return nil
}
