package main

import "github.com/emiliopalmerini/uhpc/internal/cli"

func main() {
	cli.Execute()
}
