package monitoring

type NoopMonitor struct {
	service string
}

func (m *NoopMonitor) GetService() string {
	return m.service
}

func (m *NoopMonitor) SetResponseTimeMetric(map[string]string, float64) error {
	return nil
}

func (m *NoopMonitor) SetDependencyAvailability(map[string]string, float64) error {
	return nil
}

func (m *NoopMonitor) IncLoaderEvent(map[string]string) error {
	return nil
}

func NewNoopMonitor(service string) *NoopMonitor {
	m := new(NoopMonitor)

	m.service = service

	return m
}
