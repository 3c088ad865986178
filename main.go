package main

import "github.com/KaramelBytes/hrdash/cmd"

func main() {
	cmd.Execute()
}
