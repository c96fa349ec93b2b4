package main

import "github.com/mcoot/chessroom-go/internal/cli"

func main() {
	cli.Execute()
}
