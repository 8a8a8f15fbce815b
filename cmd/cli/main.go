package main

import (
	"fmt"
	"os"

	"github.com/de-tools/vspc-reporter/pkg/runtime/terminal"
	"github.com/de-tools/vspc-reporter/pkg/services/auth"
	"github.com/de-tools/vspc-reporter/pkg/services/vspc"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Authenticate: auth.Login,
		NewClient:    vspc.NewClient,
		Output:       os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
