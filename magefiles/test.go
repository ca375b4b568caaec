//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets.
type Test mg.Namespace

// All runs every package's tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Race runs the tests with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs the tests and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

// Smoke builds the binary and drives it through a database lifecycle in a
// temp directory.
func (Test) Smoke() error {
	mg.Deps(Build)

	dir, err := os.MkdirTemp("", "where-is-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(binaryDir, binaryName)
	db := filepath.Join(dir, "db")
	steps := [][]string{
		{"database", "create"},
		{"find", "zsh"},
		{"database", "add", "vim", "{HOME}/.vimrc"},
		{"list"},
		{"database", "export", filepath.Join(dir, "snapshot.db")},
		{"database", "remove", "vim"},
		{"database", "delete"},
	}
	for _, step := range steps {
		args := append([]string{"--no-color", "--database-location", db}, step...)
		if err := sh.RunV(bin, args...); err != nil {
			return fmt.Errorf("where-is %v: %w", step, err)
		}
	}
	return nil
}
