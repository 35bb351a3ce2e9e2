/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/
package main

import (
	"github.com/sanix-darker/purr/cmd"

	_ "github.com/sanix-darker/purr/internal/provider/init"
	_ "github.com/sanix-darker/purr/internal/vcs/init"
)

func main() {
	cmd.Execute()
}
