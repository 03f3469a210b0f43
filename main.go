package main

import "github.com/plemaire/taskdeck/cmd"

func main() {
	cmd.Execute()
}
