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

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLogLevel(" DEBUG "))
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("loud"))
}

func TestNewLoggerIsRegisteredByName(t *testing.T) {
	l := NewLogger("REGISTRY")
	assert.Same(t, l, NewLogger("REGISTRY"))
	assert.True(t, SetLoggerLevel("REGISTRY", "error"))
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())
	assert.False(t, SetLoggerLevel("UNKNOWN", "debug"))
}

func TestJSONLogFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("JSONTEST")
	l.SetFormatter(&JSONLogFormatter{LoggerName: "JSONTEST"})
	l.SetLevel(logrus.InfoLevel)
	require.True(t, SetLoggerOutput("JSONTEST", &buf))

	l.WithFields(logrus.Fields{"table": "PEOPLE", "error": errors.New("boom")}).Warn("statement failed")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "warning", rec["level"])
	assert.Equal(t, "JSONTEST", rec["logger"])
	assert.Equal(t, "statement failed", rec["message"])
	assert.Equal(t, map[string]interface{}{"table": "PEOPLE", "error": "boom"}, rec["fields"])
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("PEOPLE_TEST_STRING", "value")
	t.Setenv("PEOPLE_TEST_BOOL", "not-a-bool")
	t.Setenv("PEOPLE_TEST_DURATION", "5")

	assert.Equal(t, "value", EnvDefaultString("PEOPLE_TEST_STRING", "def"))
	assert.Equal(t, "def", EnvDefaultString("PEOPLE_TEST_UNSET", "def"))
	assert.True(t, EnvDefaultBool("PEOPLE_TEST_BOOL", true))
	assert.Equal(t, 5*time.Second, EnvDefaultDuration("PEOPLE_TEST_DURATION", time.Second))
	assert.Equal(t, time.Minute, EnvDefaultDuration("PEOPLE_TEST_UNSET", time.Minute))
}
