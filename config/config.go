package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"locallens-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"60"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"60"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int      `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST"`

	// Google Maps / Places
	GoogleMapsAPIKey   string        `env:"GOOGLE_MAPS_API_KEY" env-default:""`
	PlacesBaseURL      string        `env:"PLACES_BASE_URL" env-default:"https://maps.googleapis.com/maps/api/place"`
	SearchRadiusMeters int           `env:"SEARCH_RADIUS_METERS" env-default:"100"`
	PlaceCategory      string        `env:"PLACE_CATEGORY" env-default:"restaurant"`
	PlacesTimeout      time.Duration `env:"PLACES_TIMEOUT" env-default:"10s"`

	// Gemini
	GeminiAPIKey  string        `env:"GEMINI_API_KEY" env-default:""`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	VisionModel   string        `env:"VISION_MODEL" env-default:"gemini-2.0-flash"`
	SummaryModel  string        `env:"SUMMARY_MODEL" env-default:"gemini-2.0-flash-exp"`
	GeminiTimeout time.Duration `env:"GEMINI_TIMEOUT" env-default:"45s"`

	// Pipeline
	MaxReviews    int   `env:"MAX_REVIEWS" env-default:"5"`
	MaxImageBytes int64 `env:"MAX_IMAGE_BYTES" env-default:"10485760"` // 10MB

	// Kafka Producer (identification events, optional)
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"false"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"identification-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" env-default:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
	OTLPProtocol   string `env:"OTLP_PROTOCOL" env-default:"grpc"`
	OTLPInsecure   bool   `env:"OTLP_INSECURE" env-default:"true"`
}
