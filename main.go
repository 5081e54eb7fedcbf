package main

import "github.com/venuegate/venuegate/cmd"

func main() {
	cmd.Execute()
}
