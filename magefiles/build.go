//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the testbed binary into bin/.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	fmt.Println("Build engine...")
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/anima2d", "."), withStream()); err != nil {
		return err
	}
	return nil
}
