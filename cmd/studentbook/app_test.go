package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/config"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/badger"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/jsonfile"
	"github.com/studentbook/studentbook/pkg/logger"
)

func setFlags(t *testing.T, storage, data, level string) {
	t.Helper()
	oldStorage, oldData, oldLevel, oldConfig := flagStorage, flagData, flagLogLevel, flagConfig
	t.Cleanup(func() {
		flagStorage, flagData, flagLogLevel, flagConfig = oldStorage, oldData, oldLevel, oldConfig
	})
	flagStorage, flagData, flagLogLevel = storage, data, level
	flagConfig = filepath.Join(t.TempDir(), "none.yaml")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	dir := t.TempDir()
	setFlags(t, "BADGER", dir, "DEBUG")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.DriverBadger, cfg.Storage.Driver)
	assert.Equal(t, dir, cfg.Storage.BadgerPath)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	setFlags(t, "sqlite", "", "")

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Defaults()
	cfg.Storage.File = filepath.Join(dir, "book.json")
	store, err := openStore(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &jsonfile.Store{}, store)
	require.NoError(t, store.Close())

	cfg.Storage.Driver = config.DriverBadger
	cfg.Storage.BadgerPath = filepath.Join(dir, "badger")
	store, err = openStore(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &badger.Store{}, store)
	require.NoError(t, store.Close())

	cfg.Storage.Driver = "sqlite"
	_, err = openStore(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
