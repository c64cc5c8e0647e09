package main

import "github.com/ramusita/chitgame/internal/cli"

func main() {
	cli.Execute()
}
