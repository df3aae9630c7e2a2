//go:build !(rp2040 || rp2350)

package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// options collects the command line. Every flag defaults from a
// SENSORNODE_* environment variable (a .env file is loaded first).
type options struct {
	store     string
	storeSize int64
	seed      string
	profile   string
	port      string
	gateway   string
	baud      int
	console   bool
	debug     bool
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func newRootCommand() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:          "sensornode-host",
		Short:        "Run the sensor node with simulated peripherals",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	f := root.Flags()
	f.StringVar(&o.store, "store", envString("SENSORNODE_STORE", "sensornode.bin"), "file backing the configuration store")
	f.Int64Var(&o.storeSize, "store-size", int64(envInt("SENSORNODE_STORE_SIZE", 4096)), "size of the store file in bytes")
	f.StringVar(&o.seed, "seed", envString("SENSORNODE_SEED", ""), "YAML provisioning file applied over the defaults")
	f.StringVar(&o.profile, "profile", envString("SENSORNODE_PROFILE", ""), "embedded board profile (pico, pico_motion)")
	f.StringVar(&o.port, "port", envString("SENSORNODE_PORT", ""), "serial device for commands (default stdin)")
	f.StringVar(&o.gateway, "gateway", envString("SENSORNODE_GATEWAY", ""), "serial device of the radio gateway (default stdout)")
	f.IntVar(&o.baud, "baud", envInt("SENSORNODE_BAUD", 0), "serial baud rate (0: serial_baud_rate from config)")
	f.BoolVar(&o.console, "console", envBool("SENSORNODE_CONSOLE", false), "interactive console with line editing")
	f.BoolVar(&o.debug, "debug", envBool("SENSORNODE_DEBUG", false), "debug logging before the config is loaded")

	root.AddCommand(newSeedCommand())
	return root
}
