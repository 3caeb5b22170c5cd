package main

import "github.com/klytics/abukit/cmd"

func main() {
	cmd.Execute()
}
