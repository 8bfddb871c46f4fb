package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ServeConfig holds MCP server configuration, from flags or a YAML file.
type ServeConfig struct {
	Transport string `yaml:"transport"` // "stdio" or "streamable-http"
	Port      int    `yaml:"port"`
	ADB       struct {
		Path   string `yaml:"path"`
		Serial string `yaml:"serial"`
	} `yaml:"adb"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Expose the device tools (snapshot, find, click, set-text, scroll,
wait-idle, windows, screenshot) over the Model Context Protocol.

Flags override values from --config. Tool calls are serialized: the parallel
tree walk used by resolution is not safe against a second in-flight request
mutating its view of the live tree.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "YAML config file")
	serveCmd.Flags().String("transport", "", "Transport: stdio or streamable-http (default stdio)")
	serveCmd.Flags().Int("port", 0, "Port for streamable-http transport (default 3333)")
}

func loadServeConfig(path string) (ServeConfig, error) {
	cfg := ServeConfig{Transport: "stdio", Port: 3333}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Transport == "" {
		cfg.Transport = "stdio"
	}
	if cfg.Port == 0 {
		cfg.Port = 3333
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadServeConfig(configPath)
	if err != nil {
		return err
	}
	if transport, _ := cmd.Flags().GetString("transport"); transport != "" {
		cfg.Transport = transport
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if adbPath, _ := rootCmd.PersistentFlags().GetString("adb"); adbPath != "" {
		cfg.ADB.Path = adbPath
	}
	if serial, _ := rootCmd.PersistentFlags().GetString("serial"); serial != "" {
		cfg.ADB.Serial = serial
	}

	// Long-running path: always log structured events to stderr (stdout may
	// carry the stdio transport).
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	log, err := logCfg.Build()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := newMCPServer(cfg, log)
	if err != nil {
		return err
	}
	log.Info("starting MCP server", zap.String("transport", cfg.Transport), zap.Int("port", cfg.Port))
	return s.serve(cfg)
}
