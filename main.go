package main

import (
	"github.com/tidalsec/entradump/cmd"
)

func main() {
	cmd.Execute()
}
