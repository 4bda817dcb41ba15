package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "streamnotify dev")
}

func TestRun_MissingClientIDExitsBeforeNetwork(t *testing.T) {
	chdirTemp(t)
	t.Setenv("Client_ID", "")
	t.Setenv("Client_Secret", "secret")

	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Client_ID is required")
	// Fails before logging is set up, so no log file is created either.
	_, err := os.Stat(filepath.Join(".", "notification.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_BadFormatFlag(t *testing.T) {
	chdirTemp(t)
	t.Setenv("Client_ID", "id")
	t.Setenv("Client_Secret", "secret")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "popup"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown notification format")
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-nope"}, &stdout, &stderr))
}
