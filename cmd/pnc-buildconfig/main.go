package main

import "pnc-buildconfig/internal/cli"

func main() {
	cli.Execute()
}
