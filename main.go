package main

import "github.com/samuelfneumann/slipworld/cmd"

func main() {
	cmd.Execute()
}
