//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// Lint checks formatting, runs go vet, then golangci-lint.
func Lint() error {
	mg.SerialDeps(Fmt, Vet)
	return sh.RunV(binLint, "run", "./...")
}

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Fmt fails if any file is not gofmt-clean.
func Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("files need gofmt:\n%s", files)
	}
	return nil
}
