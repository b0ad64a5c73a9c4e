package config

import (
	"os"
	"strconv"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "SMUX_DRIVER",
		apply: func(c *Config, v string) {
			c.Driver = v
		},
	},
	{
		envVar: "SMUX_ALL_USERS",
		apply: func(c *Config, v string) {
			if b, err := strconv.ParseBool(v); err == nil {
				c.AllUsers = b
			}
		},
	},
	{
		envVar: "SMUX_SQUEUE_CMD",
		apply: func(c *Config, v string) {
			c.Commands.Squeue = v
		},
	},
	{
		envVar: "SMUX_SBATCH_CMD",
		apply: func(c *Config, v string) {
			c.Commands.Sbatch = v
		},
	},
	{
		envVar: "SMUX_SSH_CMD",
		apply: func(c *Config, v string) {
			c.Commands.SSH = v
		},
	},
	{
		envVar: "SMUX_SOCKET_DIR",
		apply: func(c *Config, v string) {
			c.Dtach.SocketDir = v
		},
	},
	{
		envVar: "SMUX_ACCOUNT",
		apply: func(c *Config, v string) {
			c.Session.Account = v
		},
	},
	{
		envVar: "SMUX_PARTITION",
		apply: func(c *Config, v string) {
			c.Session.Partition = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
