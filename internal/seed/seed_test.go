package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedExecutor struct {
	ran    []string
	failOn map[string]error
}

func (e *scriptedExecutor) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	e.ran = append(e.ran, sql)
	if err, ok := e.failOn[sql]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSplit(t *testing.T) {
	script := "INSERT INTO a VALUES (1);\nINSERT INTO b VALUES (2);   \n\n  ;\nSELECT 1;"
	assert.Equal(t, []string{
		"INSERT INTO a VALUES (1)",
		"INSERT INTO b VALUES (2)",
		"SELECT 1;",
	}, Split(script))
}

func TestSplitKeepsInlineSemicolons(t *testing.T) {
	assert.Equal(t, []string{"SELECT 'a;b'"}, Split("SELECT 'a;b';\n"))
}

func TestRunContinuesPastFailure(t *testing.T) {
	statements := []string{"s1", "s2", "s3", "s4", "s5"}
	exec := &scriptedExecutor{failOn: map[string]error{"s3": errors.New("syntax error")}}

	result, err := NewRunner(exec, zap.NewNop(), nil).Run(context.Background(), statements)
	require.NoError(t, err)

	assert.Equal(t, statements, exec.ran)
	assert.Equal(t, 4, result.Executed)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 2, result.Failed[0].Index)
	assert.Equal(t, "s3", result.Failed[0].Statement)
	assert.Contains(t, result.Failed[0].Error(), "statement 3")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &scriptedExecutor{}
	_, err := NewRunner(exec, zap.NewNop(), nil).Run(ctx, []string{"s1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exec.ran)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.sql")
	require.NoError(t, os.WriteFile(path, []byte("INSERT INTO roles (name) VALUES ('admin');\nINSERT INTO roles (name) VALUES ('user');\n"), 0o600))

	exec := &scriptedExecutor{}
	result, err := NewRunner(exec, zap.NewNop(), nil).RunFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Executed)
	assert.True(t, strings.HasPrefix(exec.ran[1], "INSERT INTO roles"))

	_, err = NewRunner(exec, zap.NewNop(), nil).RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}
