package serviceprovider

import (
	"context"

	"github.com/canonical/scim-admin-ui/pkg/loader"
	"github.com/canonical/scim-admin-ui/pkg/views"
)

type ServiceInterface interface {
	GetServiceProvider(context.Context, string) (*ServiceProvider, error)
	UpdateServiceProvider(context.Context, string, *ServiceProvider) (*ServiceProvider, error)
	RefreshServiceProvider(context.Context, string) (*ServiceProvider, error)
}

// ClientInterface is the REST client of the ServiceProvider resource
type ClientInterface interface {
	Get(context.Context, loader.ParameterSet) (ServiceProvider, error)
	Update(context.Context, loader.ParameterSet, ServiceProvider) (ServiceProvider, error)
}

type ViewsInterface interface {
	GetView(context.Context, string) (*views.View, error)
}
