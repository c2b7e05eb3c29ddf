package main

import "bankrag/internal/cli"

func main() {
	cli.Execute()
}
