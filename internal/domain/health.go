package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual service.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LastError   string `json:"lastError,omitempty"`
	LastChecked string `json:"lastChecked"`
}

// LoadStats is returned by GET /v1/metrics/dashboard.
type LoadStats struct {
	SummaryLoads     int64   `json:"summaryLoads"`
	SummaryFailures  int64   `json:"summaryFailures"`
	PaymentsLoads    int64   `json:"paymentsLoads"`
	PaymentsFailures int64   `json:"paymentsFailures"`
	StaleResponses   int64   `json:"staleResponses"`
	ErrorRate        float64 `json:"errorRate"`
	Period           string  `json:"period"`
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
