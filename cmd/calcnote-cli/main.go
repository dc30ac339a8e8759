package main

import "calcnote/cmd/calcnote-cli/cmd"

func main() {
	cmd.Execute()
}
