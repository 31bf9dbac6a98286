package main

import "github.com/emiliopalmerini/labgenie/internal/cli"

func main() {
	cli.Execute()
}
