package main

import cmd "github.com/rohmanhakim/rudolf/internal/cli"

func main() {
	cmd.Execute()
}
