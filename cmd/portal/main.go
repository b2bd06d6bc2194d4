// Command portal queries and updates service portal objects.
package main

import "github.com/mesh-intelligence/portal/internal/cli"

func main() {
	cli.Execute()
}
