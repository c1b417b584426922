// Package main provides the CLI entrypoint for messagebar.
package main

func main() {
	Execute()
}
