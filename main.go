package main

import "nimfox/internal/cli"

func main() {
	cli.Execute()
}
