package main

import "github.com/vigile-dev/vigile-mcp/pkg/cli"

func main() {
	cli.Execute()
}
