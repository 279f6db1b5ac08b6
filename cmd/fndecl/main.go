package main

import "github.com/mvp-joe/fndecl/internal/cli"

func main() {
	cli.Execute()
}
