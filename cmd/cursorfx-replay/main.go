// Command cursorfx-replay runs a cursorfx script headlessly and prints the
// captured variable snapshots as YAML.
package main

import "github.com/phanxgames/cursorfx/cmd/cursorfx-replay/cmd"

func main() {
	cmd.Execute()
}
