package main

import "github.com/oshokin/dashboard-builder/cmd/dashboard-builder/cmd"

func main() {
	cmd.Execute()
}
