package main

import "skillhub/cmd/cli/command"

func main() {
	command.Execute()
}
