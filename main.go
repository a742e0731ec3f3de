package main

import "github.com/jsphweid/miditab/cmd"

func main() {
	cmd.Execute()
}
