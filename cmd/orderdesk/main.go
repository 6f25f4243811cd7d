package main

import "orderdesk/internal/cli"

func main() {
	cli.Execute()
}
