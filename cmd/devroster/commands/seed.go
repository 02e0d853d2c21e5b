package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/devroster-backend/internal/data/seed"
	types "github.com/yungbote/devroster-backend/internal/domain"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed roster tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a seed file (default: the embedded sample) and print the roster",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			devs, err := seed.LoadFile(path)
			if err != nil {
				return err
			}
			printRoster(cmd.OutOrStdout(), devs)
			return nil
		},
	})
	return cmd
}

func printRoster(w io.Writer, devs []types.Developer) {
	for i, d := range devs {
		level := "senior"
		if d.IsJunior {
			level = "junior"
		}
		id := d.ID
		if id == "" {
			id = "(generated)"
		}
		fmt.Fprintf(w, "%d. %s [%s] %s: %s\n", i+1, d.Name, level, id, strings.Join(d.FrameworkNames(), ", "))
	}
	fmt.Fprintf(w, "%d developers OK\n", len(devs))
}
