package scoreapi

import "time"

type Config struct {
	URL              string        `envconfig:"URL" split_words:"true" default:"http://127.0.0.1:8000"`
	PublicURL        string        `envconfig:"PUBLIC_URL" split_words:"true" default:"http://localhost:8000"`
	Timeout          time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	MaxResponseBytes int64         `envconfig:"MAX_RESPONSE_BYTES" split_words:"true" default:"8388608"`
}
