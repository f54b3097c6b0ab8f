package main

import "github.com/grantlink/grantlink/cli/cmd"

func main() {
	cmd.Execute()
}
