// Package servecmder provides the serve command for running the API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/strandhq/strand/api"
	"github.com/strandhq/strand/pkg/config"
	"github.com/strandhq/strand/pkg/logger"
	"github.com/strandhq/strand/pkg/storage"
	"github.com/strandhq/strand/pkg/storage/inmemory"
	"github.com/strandhq/strand/pkg/storage/postgres"
	"github.com/strandhq/strand/pkg/storage/sqlite"
)

type ServeCommander struct {
	listen      string
	driverName  string
	sqlitePath  string
	postgresDSN string
	debug       bool
	logger      *zap.Logger
}

const serveLongDesc string = `Run the Strand API server.

The store backend defaults to in-memory; pass --sqlite or --postgres
(or set storage.driver in config.toml) for a persistent store.`

const serveShortDesc string = "Run the Strand API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			configDir, err := cmd.Flags().GetString("config-dir")
			if err != nil {
				return fmt.Errorf("could not get config-dir flag: %v", err)
			}

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			cmder.applyConfig(cmd, v)

			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for API server to listen on")
	cmd.Flags().StringVarP(&cmder.sqlitePath, "sqlite", "s", "", "Path to SQLite database")
	cmd.Flags().StringVarP(&cmder.postgresDSN, "postgres", "p", "", "PostgreSQL connection string")

	return cmd
}

// applyConfig fills unset flags from viper (env vars, config.toml, defaults).
// Explicit flags win.
func (c *ServeCommander) applyConfig(cmd *cobra.Command, v *viper.Viper) {
	if !cmd.Flags().Changed("listen") {
		c.listen = v.GetString("api.listen")
	}

	c.driverName = v.GetString("storage.driver")
	if !cmd.Flags().Changed("sqlite") {
		c.sqlitePath = v.GetString("storage.sqlite_path")
	}
	if !cmd.Flags().Changed("postgres") {
		c.postgresDSN = v.GetString("storage.postgres_dsn")
	}

	// Backend flags imply the driver.
	switch {
	case cmd.Flags().Changed("postgres"):
		c.driverName = "postgres"
	case cmd.Flags().Changed("sqlite"):
		c.driverName = "sqlite"
	}
}

func (c *ServeCommander) run() error {
	c.logger = logger.New(c.debug)
	defer c.logger.Sync()

	driver, err := c.newStorageDriver()
	if err != nil {
		return err
	}
	defer driver.Close()

	server := api.NewServer(api.Config{ListenAddr: c.listen}, driver, c.logger)

	// Channel to capture the server error
	errChan := make(chan error, 1)

	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

func (c *ServeCommander) newStorageDriver() (storage.Driver, error) {
	switch c.driverName {
	case "sqlite":
		if c.sqlitePath == "" {
			c.sqlitePath = ":memory:"
		}
		driver, err := sqlite.NewDriver(c.sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite storer: %w", err)
		}
		c.logger.Info("using SQLite storage", zap.String("path", c.sqlitePath))
		return driver, nil

	case "postgres":
		driver, err := postgres.NewDriver(context.Background(), c.postgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL storer: %w", err)
		}
		c.logger.Info("using PostgreSQL storage")
		return driver, nil

	case "", "inmemory":
		c.logger.Info("using in-memory storage")
		return inmemory.NewDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.driverName)
	}
}
