package main

import "github.com/theirongolddev/feeplan/cmd"

func main() {
	cmd.Execute()
}
