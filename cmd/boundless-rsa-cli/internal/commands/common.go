// Package commands contains the cobra commands of boundless-rsa-cli.
package commands

import (
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
