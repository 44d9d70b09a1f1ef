/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromConfigAppliesEnvironment(t *testing.T) {
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_HOST", "mysql.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "staff")
	t.Setenv("DB_MAX_OPEN_CONNS", "9")
	t.Setenv("DB_SLOW_QUERY_TIME", "3")
	t.Setenv("DB_ENABLE_QUERY_LOG", "true")

	cfg := DefaultConnectionConfig()
	manager, err := NewDatabaseFactory().CreateFromConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, manager)

	assert.Equal(t, "mysql", cfg.Type)
	assert.Equal(t, "mysql.internal", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "staff", cfg.DBName)
	assert.Equal(t, 9, cfg.MaxOpenConns)
	assert.Equal(t, 3*time.Second, cfg.SlowQueryTime)
	assert.True(t, cfg.EnableQueryLog)
}

func TestCreateFromConfigRejectsUnknownType(t *testing.T) {
	t.Setenv("DB_TYPE", "")
	cfg := DefaultConnectionConfig()
	cfg.Type = "oracle"

	_, err := NewDatabaseFactory().CreateFromConfig(cfg)
	assert.ErrorContains(t, err, "unsupported database type: oracle")

	_, err = NewDatabaseFactory().CreateFromConfig(nil)
	assert.Error(t, err)
}

func TestInitializeDatabaseNeedsManager(t *testing.T) {
	err := NewDatabaseFactory().InitializeDatabase(context.Background(), nil)
	assert.ErrorContains(t, err, "database manager not created")
}

func TestInitDBRunsSchemaScripts(t *testing.T) {
	t.Setenv("DB_TYPE", "")
	t.Setenv("DB_NAME", "")
	dir := t.TempDir()
	scripts := filepath.Join(dir, "sql")
	require.NoError(t, os.Mkdir(scripts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "001_schema.sql"),
		[]byte("CREATE TABLE ADDRESSES (ID INTEGER PRIMARY KEY, CITY VARCHAR(255));\n"), 0o600))

	cfg := &Config{
		ConnectionConfig: *DefaultConnectionConfig(),
		SchemaConfig:     SchemaConfig{RunOnStartup: true, Filepath: scripts},
	}
	cfg.ConnectionConfig.DBName = filepath.Join(dir, "people")
	cfg.ConnectionConfig.SlowQueryTime = 0

	ctx := context.Background()
	db, err := InitDB(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB() })

	assert.Same(t, db, GetDB())
	assert.NotNil(t, GetDatabaseManager())

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ADDRESSES").Scan(&n))
	assert.Equal(t, 0, n)

	status := GetHealthStatus(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, GetDatabaseStats().MaxOpenConns)

	require.NoError(t, CloseDB())
	assert.Nil(t, GetDB())
	assert.False(t, GetHealthStatus(ctx).Healthy)
}

func TestInitDBMissingScriptDirectory(t *testing.T) {
	t.Setenv("DB_TYPE", "")
	t.Setenv("DB_NAME", "")
	dir := t.TempDir()
	cfg := &Config{
		ConnectionConfig: *DefaultConnectionConfig(),
		SchemaConfig:     SchemaConfig{RunOnStartup: true, Filepath: filepath.Join(dir, "absent")},
	}
	cfg.ConnectionConfig.DBName = filepath.Join(dir, "people")

	_, err := InitDB(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to open schema scripts")
}
