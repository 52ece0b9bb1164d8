package main

import "p13n-sync/cmd"

func main() {
	cmd.Execute()
}
