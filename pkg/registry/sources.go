package registry

import (
	"context"
	"fmt"
	"os"

	metaV1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	coreV1 "k8s.io/client-go/kubernetes/typed/core/v1"
)

const DefaultConfigMapKey = "resources.yaml"

// DefaultTable binds the SCIM service provider configuration of a realm, read through the
// SCIM endpoint and written through the admin extension
const DefaultTable = `resources:
  - name: ServiceProvider
    url: /realms/:realm/scim/v2/ServiceProviderConfig
    params:
      - realm
    actions:
      update:
        method: PUT
        url: /realms/:realm/scim/admin/serviceProviderConfig
`

type SourceInterface interface {
	Load(context.Context) ([]byte, error)
}

type StaticSource string

func (s StaticSource) Load(context.Context) ([]byte, error) {
	return []byte(s), nil
}

type FileSource struct {
	Path string
}

func (s *FileSource) Load(context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

type ConfigMapSource struct {
	Name      string
	Namespace string
	Key       string
	K8s       coreV1.CoreV1Interface
}

func (s *ConfigMapSource) Load(ctx context.Context) ([]byte, error) {
	cm, err := s.K8s.ConfigMaps(s.Namespace).Get(ctx, s.Name, metaV1.GetOptions{})

	if err != nil {
		return nil, err
	}

	key := s.Key

	if key == "" {
		key = DefaultConfigMapKey
	}

	raw, ok := cm.Data[key]

	if !ok {
		return nil, fmt.Errorf("key %s missing from configmap %s/%s", key, s.Namespace, s.Name)
	}

	return []byte(raw), nil
}
