package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/config"
)

// InitCmd writes a configuration file with default values
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := config.ExpandPath(ctx.ConfigPath)

	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to access config: %w", err)
	}

	cfg := config.Default()
	if err := cfg.Save(path); err != nil {
		return err
	}
	ctx.Config = cfg

	fmt.Printf("Initialized postboard config at: %s\n", path)
	return nil
}
