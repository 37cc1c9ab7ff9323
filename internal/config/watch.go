package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch loads the configuration at path, passes it to onChange and then calls
// onChange again every time the file is written. It blocks until ctx is
// cancelled.
//
// A reload that fails to decode is logged and the previous configuration
// stays in effect.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func(*Configuration)) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file, %s", err)
	}

	conf, err := decode(v)
	if err != nil {
		return err
	}
	onChange(conf)

	// viper re-reads the file before calling back but only logs a parse
	// failure, leaving v holding the previous settings. Loading the file
	// again here surfaces the error.
	reloads := make(chan reload)
	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		conf, err := LoadConfiguration(path)
		select {
		case reloads <- reload{conf: conf, err: err}:
		case <-ctx.Done():
		}
	})
	v.WatchConfig()

	logger.Info("watching configuration for changes",
		zap.String("op", "config.Watch"),
		zap.String("path", path),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-reloads:
			if r.err != nil {
				logger.Error("configuration reload failed, keeping previous configuration",
					zap.String("op", "config.Watch"),
					zap.String("path", path),
					zap.Error(r.err),
				)
				continue
			}

			logger.Info("configuration reloaded",
				zap.String("op", "config.Watch"),
				zap.String("path", path),
			)
			onChange(r.conf)
		}
	}
}

type reload struct {
	conf *Configuration
	err  error
}
