package main

import "vidshare/cmd/client/cmd"

func main() {
	cmd.Execute()
}
