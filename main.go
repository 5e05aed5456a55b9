package main

import "bookclub/internal/cli"

func main() {
	cli.Execute()
}
