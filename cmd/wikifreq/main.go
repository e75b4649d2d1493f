package main

import "wikifreq/internal/cli"

func main() {
	cli.Execute()
}
