package main

import "github.com/auricchain/auricd/internal/cli"

func main() {
	cli.Execute()
}
