package otel

// Config holds OTLP metrics exporter configuration.
type Config struct {
	Endpoint string `yaml:"endpoint" envconfig:"ENDPOINT"`
	Enabled  bool   `yaml:"enabled" envconfig:"ENABLED"`
	Insecure bool   `yaml:"insecure" envconfig:"INSECURE"`
}

// Active reports whether an exporter should be built.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}
