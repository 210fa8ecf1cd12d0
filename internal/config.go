package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=5000"`
	GrpcPort int    `env:"GRPC_PORT,default=5001"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	InspectorPort  int    `env:"INSPECTOR_PORT,default=8081"`
	LimitMessages  *int   `env:"LIMIT_MESSAGES"`

	EncryptionKey     string        `env:"ENCRYPTION_KEY,required=true"`
	JwtSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=2s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	PongTimeout          time.Duration `env:"PONG_TIMEOUT,default=60s"`
	MaxFrameSize         int64         `env:"MAX_FRAME_SIZE,default=65536"`

	ModerationEnabled bool   `env:"MODERATION_ENABLED,default=true"`
	CensoredWordsDir  string `env:"CENSORED_WORDS_DIR,default=censored"`
	CharReplacement   string `env:"CHARACTER_REPLACEMENT,default=*"`

	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=30s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}

// Address joins host and port the way net.Listen expects.
func Address(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
