package main

import (
	"os"

	"github.com/labstack/gommon/log"
	"github.com/samanqayyum/ADS/internal/config"
	"github.com/samanqayyum/ADS/internal/pipeline"
)

func main() {
	logger := log.New("indicators")
	logger.SetHeader("${time_rfc3339} ${level}")
	logger.SetLevel(log.INFO)
	logger.SetOutput(os.Stderr)

	cfg, err := config.Default()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	logger.Infof("study of %d countries over %d..%d", len(cfg.Countries), cfg.Years.From, cfg.Years.To)
	if err := pipeline.New(cfg, pipeline.WithLogger(logger)).Run(); err != nil {
		logger.Fatalf("%+v", err)
	}
}
