// Command mmkv-server is the process entry point for the store: it opens
// store.db in the working directory and starts the line-protocol server
// on the default port. It takes no flags and reads no environment
// variables — restarting it against the same directory is the only
// configuration surface it has.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ripper-grove/mmkv/internal/engine"
	"github.com/ripper-grove/mmkv/internal/server"
	"github.com/ripper-grove/mmkv/internal/utils"
)

const (
	dataFileName = "store.db"
	defaultPort  = 6379
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	existed := utils.PathExists(dataFileName)

	eng, err := engine.Open(dataFileName)
	if err != nil {
		logger.Error("failed to open store", "file", dataFileName, "err", err)
		os.Exit(1)
	}
	defer eng.Close()

	if existed {
		logger.Info("opened existing store", "file", dataFileName)
	} else {
		logger.Info("created new store", "file", dataFileName)
	}

	handler := &server.Handler{Engine: eng, Logger: logger}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(ctx, defaultPort, handler.Handle, logger)
	}()

	go func() {
		utils.ListenForProcessInterruptOrKill()
		cancel()
	}()

	if err := <-serverErr; err != nil {
		logger.Error("server stopped abnormally", "err", err)
		os.Exit(1)
	}

	logger.Info("shutting down")
}
