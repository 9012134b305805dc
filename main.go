package main

import "github.com/Grusburk/intecmd/cmd"

func main() {
	cmd.Execute()
}
