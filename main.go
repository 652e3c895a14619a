package main

import "github.com/saasrevops/revenue-gateway/cmd"

func main() {
	cmd.Execute()
}
