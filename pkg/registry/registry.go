package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/canonical/scim-admin-ui/internal/resource"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var ErrUnknownResource = errors.New("unknown resource")

type Table struct {
	Resources []resource.Definition `yaml:"resources"`
}

type Config struct {
	BaseURL    string
	Source     SourceInterface
	HTTPClient *http.Client
}

// Registry holds the resource clients built at startup, it is never mutated afterwards
type Registry struct {
	clients map[string]*resource.Client
}

func (r *Registry) Get(name string) (*resource.Client, error) {
	c, ok := r.clients[name]

	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownResource, name)
	}

	return c, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.clients))

	for name := range r.clients {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ParseTable decodes a YAML resource table, unknown fields are rejected
func ParseTable(raw []byte) (*Table, error) {
	table := new(Table)

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	if err := decoder.Decode(table); err != nil {
		return nil, fmt.Errorf("failed unmarshalling resource table: %w", err)
	}

	return table, nil
}

// NewRegistry loads the resource table and builds one client per entry, every invalid entry
// is reported in the returned error
func NewRegistry(ctx context.Context, config *Config, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Registry, error) {
	ctx, span := tracer.Start(ctx, "registry.NewRegistry")
	defer span.End()

	if config == nil {
		panic("empty config for resource registry")
	}

	source := config.Source

	if source == nil {
		source = StaticSource(DefaultTable)
	}

	raw, err := source.Load(ctx)

	if err != nil {
		logger.Errorf("failed loading resource table: %s", err)
		return nil, err
	}

	table, err := ParseTable(raw)

	if err != nil {
		return nil, err
	}

	r := new(Registry)
	r.clients = make(map[string]*resource.Client)

	var errs error

	seen := make(map[string]bool)

	for i, def := range table.Resources {
		if seen[def.Name] {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: duplicated resource %s", i, def.Name))
			continue
		}

		seen[def.Name] = true

		c, err := resource.NewClient(config.BaseURL, def, config.HTTPClient, tracer, monitor, logger)

		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}

		r.clients[def.Name] = c
	}

	if errs != nil {
		return nil, errs
	}

	logger.Infof("resource registry loaded: %v", r.Names())

	return r, nil
}
