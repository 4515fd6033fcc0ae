package main

import "github.com/OpenTraceLab/dsnroute/cmd/dsnroute/cmd"

func main() {
	cmd.Execute()
}
