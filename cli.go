//go:build cli
// +build cli

package main

import (
	_ "productmedia.GO/custom"

	"productmedia.GO/cmd"
	"productmedia.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
