package main

import "github.com/aalvaropc/recur/internal/cli"

func main() {
	cli.Execute()
}
