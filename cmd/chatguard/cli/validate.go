package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a filter list configuration",
	Long: `Load the configuration, build the filter lists, and print a summary.
Structural errors (bad list types, malformed settings, duplicate names)
fail validation; individual malformed filters are reported as skipped.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config/-c is required for validate command")
	}

	f, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	lists, err := config.BuildLists(f, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d list(s)\n", cfgFile, len(lists))
	for i, l := range lists {
		fmt.Printf("  %s\n", l.Name())
		for _, t := range api.ListTypes() {
			sub, ok := l.SubList(t)
			if !ok {
				continue
			}
			configured := 0
			overridden := 0
			for _, pc := range f.Lists[i].Partitions {
				if lt, err := api.ParseListType(pc.ListType); err == nil && lt == t {
					configured = len(pc.Filters)
					for _, fc := range pc.Filters {
						if !fc.Overrides.Empty() {
							overridden++
						}
					}
				}
			}
			line := fmt.Sprintf("    %s: %d filter(s), %d default rule(s)",
				t, len(sub.Filters), sub.Defaults.Validations.Len())
			if overridden > 0 {
				line += fmt.Sprintf(", %d with overrides", overridden)
			}
			if skipped := configured - len(sub.Filters); skipped > 0 {
				line += fmt.Sprintf(" (%d malformed, skipped)", skipped)
			}
			fmt.Println(line)
		}
	}
	return nil
}
