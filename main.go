package main

import "github.com/jcdickinson/monofetch/cmd"

func main() {
	cmd.Execute()
}
