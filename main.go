package main

import "github.com/jcdickinson/notionvault/cmd"

func main() {
	cmd.Execute()
}
