package main

import "github.com/deepnoodle-ai/meetflow/cmd/meetflow/cli"

func main() {
	cli.Execute()
}
