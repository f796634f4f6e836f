package main

import "github.com/mcoot/tilegame/internal/cli"

func main() {
	cli.Execute()
}
