package config

import (
	"strings"
	"time"

	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

const DefaultSmokeBaseURL = "http://localhost:3335"

type SmokeConfig struct {
	BaseURL  string
	Timeout  time.Duration
	LessonID string
	Token    string
}

func LoadSmokeConfig(lookup envutil.LookupFunc, log *logger.Logger) SmokeConfig {
	if lookup == nil {
		lookup = envutil.OS
	}
	return SmokeConfig{
		BaseURL:  strings.TrimRight(envutil.String(lookup, "SMOKE_BASE_URL", DefaultSmokeBaseURL, log), "/"),
		Timeout:  envutil.Duration(lookup, "SMOKE_TIMEOUT", 10*time.Second, log),
		LessonID: strings.TrimSpace(envutil.String(lookup, "SMOKE_LESSON_ID", "", log)),
		Token:    envutil.String(lookup, "SMOKE_TOKEN", "", nil),
	}
}
