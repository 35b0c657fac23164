package main

import "postboard/cmd"

func main() {
	cmd.Execute()
}
