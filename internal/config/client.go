package config

import (
	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

const (
	EnvAPIURL    = "NEXT_PUBLIC_API_URL"
	EnvSocketURL = "NEXT_PUBLIC_SOCKET_URL"

	DefaultAPIURL    = "http://localhost:3334"
	DefaultSocketURL = "http://localhost:3334"
)

// ClientConfig is what browser clients need to reach the API and the
// realtime socket.
type ClientConfig struct {
	APIURL    string `json:"apiUrl" yaml:"apiUrl"`
	SocketURL string `json:"socketUrl" yaml:"socketUrl"`
}

func LoadClientConfig(lookup envutil.LookupFunc, log *logger.Logger) ClientConfig {
	if lookup == nil {
		lookup = envutil.OS
	}
	return ClientConfig{
		APIURL:    envutil.String(lookup, EnvAPIURL, DefaultAPIURL, log),
		SocketURL: envutil.String(lookup, EnvSocketURL, DefaultSocketURL, log),
	}
}
