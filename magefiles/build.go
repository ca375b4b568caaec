//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for where-is using Mage.
//
// Usage:
//
//	mage build        Compile the where-is binary to bin/
//	mage install      Install where-is to GOPATH/bin
//	mage test:all     Run all tests
//	mage test:cover   Run tests with a coverage profile
//	mage lint         Run golangci-lint
//	mage clean        Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "where-is"
	binaryDir  = "bin"
	cmdDir     = "./cmd/where-is"
)

// Build compiles the where-is binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
