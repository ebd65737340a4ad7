package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
tags:
  - {id: "1", name: home, color: "#9ece6a"}
  - {id: "2", name: work, color: "#7aa2f7"}
tasks:
  - id: "1"
    title: Paint fence
    tags: [home]
    subtasks:
      - {id: "1-1", title: Buy paint, status: completed}
      - id: "1-2"
        title: Sand boards
        subtasks:
          - {id: "1-2-1", title: Rent sander}
  - id: "2"
    title: Quarterly report
    status: in-progress
    tags: [work]
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListPrintsTasksWithProgress(t *testing.T) {
	out, err := execute(t, "list", "--config", writeConfig(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Paint fence")
	assert.Contains(t, out, "Quarterly report")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "2 tasks")
}

func TestListFilters(t *testing.T) {
	path := writeConfig(t)

	out, err := execute(t, "list", "--config", path, "--tag", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Quarterly report")
	assert.NotContains(t, out, "Paint fence")

	out, err = execute(t, "list", "--config", path, "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Paint fence")
	assert.NotContains(t, out, "Quarterly report")
}

func TestListRejectsUnknownStatus(t *testing.T) {
	_, err := execute(t, "list", "--config", writeConfig(t), "--status", "blocked")
	assert.ErrorContains(t, err, "unknown status")
}

func TestListDemo(t *testing.T) {
	out, err := execute(t, "list", "--config", writeConfig(t), "--demo")
	require.NoError(t, err)
	assert.NotContains(t, out, "Paint fence")
}

func TestTagsCountsUsage(t *testing.T) {
	out, err := execute(t, "tags", "--config", writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "#home")
	assert.Contains(t, out, "#work")
	assert.Contains(t, out, "#9ece6a")
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [{name: a}, {name: a}]\n"), 0644))

	_, err := execute(t, "tags", "--config", path)
	assert.Error(t, err)
}
