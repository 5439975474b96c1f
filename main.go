package main

import "github.com/proctorhq/proctor/cmd"

func main() {
	cmd.Execute()
}
