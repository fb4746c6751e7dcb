package main

import "setupdeps/cmd"

func main() {
	cmd.Execute()
}
