package main

import "github.com/mcoot/hockeytracker/internal/cli"

func main() {
	cli.Execute()
}
