package main

import "github.com/hurou927/marygen/cmd"

func main() {
	cmd.Execute()
}
