package main

import "github.com/itsakphyo/myanlang-translation-platform/cmd"

func main() {
	cmd.Execute()
}
