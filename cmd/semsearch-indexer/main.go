package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/kailas-cloud/semsearch/internal/config"
	"github.com/kailas-cloud/semsearch/internal/indexer"
	logpkg "github.com/kailas-cloud/semsearch/internal/logger"
	"github.com/kailas-cloud/semsearch/internal/version"
)

func main() {
	_ = godotenv.Load()

	logger, err := logpkg.New(config.GetEnv(), "")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	cmd := indexer.NewRootCommand(version.Version, version.Commit, version.Date, logger)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
