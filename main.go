package main

import "github.com/d365fo-tools/recweaver/cmd"

func main() {
	cmd.Execute()
}
