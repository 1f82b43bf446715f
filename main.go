package main

import "respclient/cmd"

func main() {
	cmd.Execute()
}
