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
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

var fileOrderPattern = regexp.MustCompile(`^(\d+)_`)

// ScriptRunner executes the SQL files of a directory, one transaction per
// file, in file order. Files named NNN_xxx.sql run by ascending NNN; the
// others run last by name.
type ScriptRunner struct {
	db     *bun.DB
	logger Logger
}

// SQLFileInfo describes a SQL file discovered by the runner.
type SQLFileInfo struct {
	Path  string
	Order int
}

// ExecutionResult contains the outcome of executing a single SQL file.
type ExecutionResult struct {
	File         string
	Statements   int
	Duration     time.Duration
	RowsAffected int64
}

func NewScriptRunner(db *bun.DB, logger Logger) *ScriptRunner {
	if logger == nil {
		logger = GetLogger()
	}
	return &ScriptRunner{db: db, logger: logger}
}

// Run executes every *.sql file found under fsys.
func (s *ScriptRunner) Run(ctx context.Context, fsys fs.FS) error {
	files, err := s.Files(fsys)
	if err != nil {
		return fmt.Errorf("failed to get SQL files: %w", err)
	}
	if len(files) == 0 {
		s.logger.Info("No SQL files found to execute")
		return nil
	}

	for _, file := range files {
		result, err := s.executeFile(ctx, fsys, file)
		if err != nil {
			s.logger.Error("SQL file execution failed", "file", file.Path, "error", err)
			return fmt.Errorf("SQL file execution failed %s: %w", file.Path, err)
		}
		s.logger.Info("SQL file executed successfully",
			"file", result.File,
			"statements", result.Statements,
			"duration", result.Duration.String(),
			"rows_affected", result.RowsAffected,
		)
	}
	return nil
}

// Files lists the SQL files under fsys in execution order.
func (s *ScriptRunner) Files(fsys fs.FS) ([]SQLFileInfo, error) {
	var files []SQLFileInfo
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			return nil
		}
		files = append(files, SQLFileInfo{Path: path, Order: parseFileOrder(d.Name())})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Order != files[j].Order {
			return files[i].Order < files[j].Order
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func parseFileOrder(filename string) int {
	matches := fileOrderPattern.FindStringSubmatch(filename)
	if len(matches) > 1 {
		if order, err := strconv.Atoi(matches[1]); err == nil {
			return order
		}
	}
	return 999
}

func (s *ScriptRunner) executeFile(ctx context.Context, fsys fs.FS, file SQLFileInfo) (ExecutionResult, error) {
	start := time.Now()
	result := ExecutionResult{File: file.Path}

	content, err := fs.ReadFile(fsys, file.Path)
	if err != nil {
		return result, fmt.Errorf("failed to read file: %w", err)
	}
	statements := SplitStatements(string(content))
	result.Statements = len(statements)
	if len(statements) == 0 {
		return result, nil
	}

	err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, stmt := range statements {
			res, err := tx.ExecContext(ctx, stmt)
			if err != nil {
				return fmt.Errorf("failed to execute SQL statement: %s, error: %w", stmt, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				result.RowsAffected += n
			}
		}
		return nil
	})
	result.Duration = time.Since(start)
	return result, err
}

// SplitStatements splits a script on trailing semicolons, dropping blank
// lines and "--" comment lines.
func SplitStatements(content string) []string {
	var (
		statements []string
		current    strings.Builder
	)
	flush := func() {
		stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString(" ")
		if strings.HasSuffix(line, ";") {
			flush()
		}
	}
	flush()
	return statements
}
