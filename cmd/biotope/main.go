// Package main provides the biotope CLI application.
// biotope ranks habitats of the Slovak habitat catalog for lists of
// observed plant species.
package main

import "github.com/robertsuvada-sys/biotope-fqi-app/cmd"

func main() {
	cmd.Execute()
}
