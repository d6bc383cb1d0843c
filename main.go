package main

import (
	"github.com/growthboot/FlakeMonster/cmd"
)

func main() {
	cmd.Execute()
}
