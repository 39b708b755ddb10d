package model

// HealthStatus represents the possible health status values
type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// ComponentHealthStatus represents the health check structure of an application component
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthResponse represents the health check response of the whole application
type HealthResponse struct {
	Status  HealthStatus          `json:"status"`
	Storage ComponentHealthStatus `json:"storage"`
	Queue   ComponentHealthStatus `json:"queue"`
}

func ComponentUp(details map[string]string) ComponentHealthStatus {
	if details == nil {
		details = map[string]string{}
	}
	if _, ok := details["message"]; !ok {
		details["message"] = string(StatusUp)
	}
	return ComponentHealthStatus{Status: StatusUp, Details: details}
}

func ComponentDown(err error) ComponentHealthStatus {
	return ComponentHealthStatus{
		Status: StatusDown,
		Details: map[string]string{
			"message": err.Error(),
		},
	}
}
