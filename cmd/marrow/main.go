package main

import (
	"fmt"
	"os"

	"github.com/marrowdb/marrow/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
