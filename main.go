package main

import "github.com/mawngo/distancers/cmd"

func main() {
	cmd.NewCLI().Execute()
}
