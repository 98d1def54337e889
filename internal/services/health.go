package services

import "context"

// HealthResult reports the service status.
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthService implements the health check
type HealthService struct {
	serviceName string
	checkDB     func() error
}

// NewHealthService creates a new health service; checkDB may be nil
func NewHealthService(serviceName string, checkDB func() error) *HealthService {
	return &HealthService{serviceName: serviceName, checkDB: checkDB}
}

// Check reports whether the service and its database are reachable.
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	status := "healthy"
	if s.checkDB != nil {
		if err := s.checkDB(); err != nil {
			status = "degraded"
		}
	}
	return &HealthResult{
		Status:  status,
		Service: s.serviceName,
	}
}
