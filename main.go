package main

import "github.com/4elobrek9/repodoc-cli/cmd"

func main() {
	cmd.Execute()
}
