// Package main is the entry point for the voucher CLI.
package main

import "github.com/plenert/voucher/voucher/cmd"

func main() {
	cmd.Execute()
}
