package main

import "github.com/vivahlabs/vivah-cli/cmd"

func main() {
	cmd.Execute()
}
