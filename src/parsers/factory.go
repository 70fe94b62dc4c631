package parsers

import (
	"fmt"

	"github.com/username/metricsanalyzer/src/models"
	"github.com/username/metricsanalyzer/src/parsers/hotmart"
	"github.com/username/metricsanalyzer/src/parsers/hubla"
)

func GetParser(platform models.Platform) (Parser, error) {
	switch platform {
	case models.PlatformHubla:
		return hubla.NewParser(), nil
	case models.PlatformHotmart:
		return hotmart.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for platform: %s", platform)
	}
}
