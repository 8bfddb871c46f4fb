package main

import "github.com/danielealbano/android-remote-control-mcp/cmd"

func main() {
	cmd.Execute()
}
