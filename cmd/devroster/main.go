package main

import (
	"os"

	"github.com/yungbote/devroster-backend/cmd/devroster/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
