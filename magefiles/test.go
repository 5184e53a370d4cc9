//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests that need no GL or X11 headers.
func (Test) Core() error {
	_, err := executeCmd("go", withArgs("test",
		"./engine/core/...",
		"./engine/containers/...",
		"./engine/math/...",
		"./engine/assets/...",
		"./engine/renderer",
	), withDir("."), withStream())
	return err
}
