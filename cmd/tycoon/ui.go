package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"MusicTycoon/internal/config"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
)

func printSuccess(msg string) { success.Println(msg) }
func printWarn(msg string)    { warn.Println(msg) }
func printHeader(msg string)  { accent.Println(msg) }

// defaultConfigPath returns CONFIG_PATH when set, else configs/config.yaml.
func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	log.Printf("[INFO] config loaded from %s", path)
	return cfg, nil
}
