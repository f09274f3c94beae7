package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"TechLens/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

var RootCmd = &cobra.Command{
	Use:   "techlens",
	Short: "technical indicators and charts for one instrument",

	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")
	RootCmd.PersistentFlags().Bool("debug", false, "debug logging")
}

// loadConfig resolves the config path from --config, then CONFIG_PATH.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = defaultConfigPath
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg.Log.Level, cfg.Log.Format, debug); err != nil {
		return nil, err
	}
	log.Debugf("config loaded from %s", path)
	return cfg, nil
}

func setupLogging(level, format string, debug bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if debug {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log format %q is not one of text, json", format)
	}
	return nil
}
