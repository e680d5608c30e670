package main

import "github.com/resticw/resticw/cmd"

func main() {
	cmd.Execute()
}
