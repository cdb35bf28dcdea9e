package main

import "github.com/virus-evolution/gonucleic/cmd"

func main() {
	cmd.Execute()
}
