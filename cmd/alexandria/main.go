package main

import "github.com/bookworm-labs/alexandria/cli"

func main() {
	cli.Execute()
}
