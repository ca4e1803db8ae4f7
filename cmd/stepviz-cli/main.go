package main

import "stepviz/cmd/stepviz-cli/cmd"

func main() {
	cmd.Execute()
}
