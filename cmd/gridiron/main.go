// Package main is the entry point for the gridiron CLI.
package main

import (
	"github.com/huangsam/gridiron/cmd"
	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseCaching()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
