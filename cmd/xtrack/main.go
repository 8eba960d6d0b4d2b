package main

import "xtrack/internal/cmd"

func main() {
	cmd.Run()
}
