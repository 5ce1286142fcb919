// Package main is the entry point for the nhlfeat CLI tool, which turns NHL
// play-by-play files into one row of team features per game.
package main

import "github.com/pable/go-nhl-features/cmd"

func main() {
	cmd.Execute()
}
