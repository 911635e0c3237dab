package main

import "pengine-e2e/cli"

func main() {
	cli.Execute()
}
