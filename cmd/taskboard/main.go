package main

import "github.com/ptran/taskboard/internal/cli"

func main() {
	cli.Execute()
}
