package main

import "github.com/kold/ringicon/cmd"

func main() {
	cmd.Execute()
}
