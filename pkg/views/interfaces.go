package views

import "context"

type ServiceInterface interface {
	CreateView(context.Context) (*View, error)
	GetView(context.Context, string) (*View, error)
	Navigate(context.Context, string, string) (*View, error)
	DeleteView(context.Context, string) error
}
