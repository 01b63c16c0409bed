package main

import "github.com/hydronet/dynwave/cmd"

func main() {
	cmd.Execute()
}
