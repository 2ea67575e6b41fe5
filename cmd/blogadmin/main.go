package main

import "github.com/mcoot/blogadmin/internal/cli"

func main() {
	cli.Execute()
}
