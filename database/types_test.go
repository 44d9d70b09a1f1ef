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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
connection:
  type: postgres
  host: db.internal
  port: 5432
  username: people
  password: secret
  dbname: peopledb
  sslmode: require
  max_open_conns: 20
  slow_query_time: 500ms
schema:
  run_on_startup: true
  filepath: deploy/sql
`

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	conn := cfg.ConnectionConfig
	assert.Equal(t, "postgres", conn.Type)
	assert.Equal(t, "db.internal", conn.Host)
	assert.Equal(t, 5432, conn.Port)
	assert.Equal(t, "peopledb", conn.DBName)
	assert.Equal(t, "require", conn.SSLMode)
	assert.Equal(t, 20, conn.MaxOpenConns)
	assert.Equal(t, 500*time.Millisecond, conn.SlowQueryTime)

	defaults := DefaultConnectionConfig()
	assert.Equal(t, defaults.MaxIdleConns, conn.MaxIdleConns)
	assert.Equal(t, defaults.ConnectTimeout, conn.ConnectTimeout)

	assert.True(t, cfg.SchemaConfig.RunOnStartup)
	assert.Equal(t, "deploy/sql", cfg.SchemaConfig.Filepath)
}

func TestParseConfigRejectsBadYAML(t *testing.T) {
	_, err := ParseConfig([]byte("connection: [unclosed"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.ConnectionConfig.Host)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
