package main

import "github.com/ibneal/PersonalWebsite/cmd"

func main() {
	cmd.Execute()
}
