package config

import "time"

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	LogFile  string `envconfig:"log_file" default:"log.txt"`

	Port int `envconfig:"port" default:"8080"`

	Debug bool `envconfig:"debug" default:"false"`

	CORSOrigins []string `envconfig:"cors_origins"`
	Kubeconfig  string   `envconfig:"kubeconfig"`

	// SCIMBaseURL is prepended to every resource URL template, the keycloak auth URL
	SCIMBaseURL    string        `envconfig:"scim_base_url" required:"true"`
	SCIMTimeout    time.Duration `envconfig:"scim_timeout" default:"10s"`
	ResourcesFile  string        `envconfig:"resources_file"`
	ResourcesCM    string        `envconfig:"resources_configmap_name"`
	ResourcesCMNS  string        `envconfig:"resources_configmap_namespace" default:"default"`
	ResourcesCMKey string        `envconfig:"resources_configmap_key" default:"resources.yaml"`

	EagerFetch    bool          `envconfig:"eager_fetch" default:"false"`
	ViewTTL       time.Duration `envconfig:"view_ttl" default:"30m"`
	SweepInterval time.Duration `envconfig:"view_sweep_interval" default:"1m"`
}
