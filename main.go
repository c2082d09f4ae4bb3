package main

import "github.com/foliodash/folio/cmd"

func main() {
	cmd.Execute()
}
