package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/canonical/scim-admin-ui/pkg/loader"
)

// Typed decodes the JSON answers of a Client into T, it implements loader.Fetcher
// and loader.Updater
type Typed[T any] struct {
	client *Client
}

func (t *Typed[T]) Get(ctx context.Context, params loader.ParameterSet) (T, error) {
	return t.call(ctx, ActionGet, params, nil)
}

func (t *Typed[T]) Update(ctx context.Context, params loader.ParameterSet, body T) (T, error) {
	return t.call(ctx, ActionUpdate, params, body)
}

func (t *Typed[T]) call(ctx context.Context, action string, params loader.ParameterSet, body interface{}) (T, error) {
	var value T

	raw, err := t.client.Do(ctx, action, params, body)

	if err != nil {
		return value, err
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, &TransportError{
			Resource: t.client.name,
			Action:   action,
			Method:   t.client.actions[action].Method,
			URL:      t.client.baseURL + t.client.actions[action].URL,
			Err:      fmt.Errorf("decoding response: %w", err),
		}
	}

	return value, nil
}

func NewTyped[T any](client *Client) *Typed[T] {
	t := new(Typed[T])

	t.client = client

	return t
}

// IsTransportError reports whether err comes from the resource server and returns it
func IsTransportError(err error) (*TransportError, bool) {
	terr := new(TransportError)

	if errors.As(err, &terr) {
		return terr, true
	}

	return nil, false
}
