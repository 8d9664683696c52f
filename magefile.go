//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "lingobridge"

// Default target to run when none is specified
var Default = Build

// Build compiles the lingobridge binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/lingobridge")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dest := filepath.Join(home, "go", "bin", binary)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	fmt.Println("Installing to", dest)
	return sh.Copy(dest, binary)
}

// Clean removes the binary and the local caches
func Clean() error {
	for _, p := range []string{binary, ".lingobridge-cache"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}
