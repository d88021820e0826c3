package main

import "github.com/dba-c24/extern/cmd/extern-dump/cmd"

func main() {
	cmd.Execute()
}
