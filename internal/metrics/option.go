package metrics

// Exporter selects where meter readings go.
type Exporter string

const (
	ExporterPrometheus Exporter = "prometheus"
	ExporterOTLP       Exporter = "otlp"
)

// ExporterConfig configures one metric reader.
type ExporterConfig struct {
	Exporter Exporter
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

type Config struct {
	ServiceName string
	Version     string
	Exporters   []ExporterConfig
}

type OptionFn func(cfg *Config)

func WithServiceName(name string) OptionFn {
	return func(cfg *Config) {
		cfg.ServiceName = name
	}
}

func WithVersion(version string) OptionFn {
	return func(cfg *Config) {
		cfg.Version = version
	}
}

// WithPrometheus exposes readings on the default Prometheus registry.
func WithPrometheus() OptionFn {
	return func(cfg *Config) {
		cfg.Exporters = append(cfg.Exporters, ExporterConfig{Exporter: ExporterPrometheus})
	}
}

// WithOTLP pushes readings to an OTLP gRPC collector.
func WithOTLP(endpoint string, headers map[string]string, insecure bool) OptionFn {
	return func(cfg *Config) {
		cfg.Exporters = append(cfg.Exporters, ExporterConfig{
			Exporter: ExporterOTLP,
			Endpoint: endpoint,
			Headers:  headers,
			Insecure: insecure,
		})
	}
}
