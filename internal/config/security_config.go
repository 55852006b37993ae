package config

import "time"

type SecurityConfig interface {
	GetDeviceSecret() string
	GetDeviceTokenTTL() time.Duration
	GetOTPFlowTTL() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetDeviceSecret signs device cookies. An empty value makes the server
// generate a random secret at startup, which invalidates cookies on restart.
func (Security) GetDeviceSecret() string {
	return GetEnv("DEVICE_SECRET", "")
}

func (Security) GetDeviceTokenTTL() time.Duration {
	return GetEnvDuration("DEVICE_TOKEN_TTL", 365*24*time.Hour)
}

// GetOTPFlowTTL bounds the time between the password step and the passcode step.
func (Security) GetOTPFlowTTL() time.Duration {
	return GetEnvDuration("OTP_FLOW_TTL", 5*time.Minute)
}
