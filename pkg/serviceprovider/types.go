package serviceprovider

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

const SchemaServiceProviderConfig = "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"

var ErrInvalidConfig = errors.New("invalid service provider configuration")

type Supported struct {
	Supported bool `json:"supported"`
}

type Bulk struct {
	Supported      bool `json:"supported"`
	MaxOperations  int  `json:"maxOperations"`
	MaxPayloadSize int  `json:"maxPayloadSize"`
}

type Filter struct {
	Supported  bool `json:"supported"`
	MaxResults int  `json:"maxResults"`
}

type AuthenticationScheme struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	SpecURI          string `json:"specUri,omitempty"`
	DocumentationURI string `json:"documentationUri,omitempty"`
	Primary          bool   `json:"primary,omitempty"`
}

type Meta struct {
	ResourceType string     `json:"resourceType,omitempty"`
	Location     string     `json:"location,omitempty"`
	Created      *time.Time `json:"created,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// ServiceProvider is the SCIM ServiceProviderConfig of one realm
type ServiceProvider struct {
	Schemas               []string               `json:"schemas,omitempty"`
	DocumentationURI      string                 `json:"documentationUri,omitempty"`
	Patch                 Supported              `json:"patch"`
	Bulk                  Bulk                   `json:"bulk"`
	Filter                Filter                 `json:"filter"`
	ChangePassword        Supported              `json:"changePassword"`
	Sort                  Supported              `json:"sort"`
	ETag                  Supported              `json:"etag"`
	AuthenticationSchemes []AuthenticationScheme `json:"authenticationSchemes"`
	Meta                  *Meta                  `json:"meta,omitempty"`
}

// Validate reports every invalid limit at once
func (sp *ServiceProvider) Validate() error {
	var err error

	if sp.Bulk.MaxOperations < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: bulk.maxOperations must not be negative", ErrInvalidConfig))
	}

	if sp.Bulk.MaxPayloadSize < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: bulk.maxPayloadSize must not be negative", ErrInvalidConfig))
	}

	if sp.Filter.MaxResults < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: filter.maxResults must not be negative", ErrInvalidConfig))
	}

	for i, scheme := range sp.AuthenticationSchemes {
		if scheme.Type == "" || scheme.Name == "" {
			err = multierr.Append(err, fmt.Errorf("%w: authenticationSchemes[%d] needs a type and a name", ErrInvalidConfig, i))
		}
	}

	return err
}

// withSchema sets the core schema when the payload omits it
func (sp ServiceProvider) withSchema() ServiceProvider {
	if len(sp.Schemas) == 0 {
		sp.Schemas = []string{SchemaServiceProviderConfig}
	}

	return sp
}
