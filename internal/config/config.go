package config

type Config struct {
	NATSURL      string `flag:"nats-url"`
	NATSInit     bool   `flag:"nats-init"`
	NATSConsumer string `flag:"nats-consumer"`
	LogLevel     string `flag:"log-level"`
	MetricsAddr  string `flag:"metrics-addr"`
	DefaultsPath string `flag:"defaults"`
}
