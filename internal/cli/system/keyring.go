package system

import (
	"fmt"

	"github.com/jstrand/remind/internal/cli"
	"github.com/jstrand/remind/internal/keyring"
	"github.com/jstrand/remind/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show whether a connection string is stored."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
}

type KeyringSetCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string (may include credentials; it is stored only in the keyring)."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	// Keyring storage is the one place credentials are allowed, so only
	// check the basic format here.
	if _, err := postgres.ValidateConnString(c.ConnString); err != nil && err != postgres.ErrEmbeddedCredentials {
		return err
	}

	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(ctx *cli.Context) error {
	if _, err := keyring.GetConnectionString(); err != nil {
		return err
	}
	// Never print the connection string itself; it may carry credentials
	fmt.Println("A connection string is stored in the OS keyring.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
