// Package seed loads SQL fixture files statement by statement.
package seed

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var statementBoundary = regexp.MustCompile(`;\s*\n`)

// Executor runs one SQL statement. *pgxpool.Pool satisfies it.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Recorder counts statement outcomes.
type Recorder interface {
	RecordSeedStatement(ok bool)
}

// StatementError is a failed statement. Seeding continues past it.
type StatementError struct {
	Index     int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d: %v", e.Index+1, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Result summarizes a seed run.
type Result struct {
	Executed int
	Failed   []*StatementError
}

// Split breaks a script on ';' followed by optional whitespace and a newline,
// trimming each piece and dropping empty ones.
func Split(script string) []string {
	parts := statementBoundary.Split(script, -1)
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}

// Runner executes seed statements.
type Runner struct {
	exec     Executor
	logger   *zap.Logger
	recorder Recorder
}

// NewRunner builds a Runner. recorder may be nil.
func NewRunner(exec Executor, logger *zap.Logger, recorder Recorder) *Runner {
	return &Runner{exec: exec, logger: logger, recorder: recorder}
}

// Run executes every statement in order. A failing statement is logged and
// recorded in the result; only context cancellation stops the run early.
func (r *Runner) Run(ctx context.Context, statements []string) (Result, error) {
	var result Result
	for i, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := r.exec.Exec(ctx, stmt); err != nil {
			stmtErr := &StatementError{Index: i, Statement: stmt, Err: err}
			result.Failed = append(result.Failed, stmtErr)
			r.record(false)
			r.logger.Error("seed statement failed",
				zap.Int("index", i+1),
				zap.String("statement", preview(stmt)),
				zap.Error(err),
			)
			continue
		}
		result.Executed++
		r.record(true)
	}
	r.logger.Info("database seeding completed",
		zap.Int("executed", result.Executed),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// RunFile reads path, splits it and runs the statements.
func (r *Runner) RunFile(ctx context.Context, path string) (Result, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read seed file: %w", err)
	}
	return r.Run(ctx, Split(string(script)))
}

func (r *Runner) record(ok bool) {
	if r.recorder != nil {
		r.recorder.RecordSeedStatement(ok)
	}
}

func preview(stmt string) string {
	const max = 200
	if len(stmt) <= max {
		return stmt
	}
	return stmt[:max]
}
