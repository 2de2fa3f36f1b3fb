package main

import "github.com/inovacc/horizon/cmd"

func main() {
	cmd.Execute()
}
