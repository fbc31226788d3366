package main

import "wms-report/internal/cli"

func main() {
	cli.Execute()
}
