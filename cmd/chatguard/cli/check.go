package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/engine"
)

var (
	checkContent     string
	checkChannel     string
	checkCategory    string
	checkDM          bool
	checkAuthor      string
	checkRoles       []string
	checkAttachments []string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run one message against the configured filter lists",
	Long: `Check which filters a message would trigger and which actions it
would produce, without auditing or watching. Useful for testing and
debugging filter configurations.`,
	Example: `  chatguard check -c lists.yaml --content "free nitro at discord.gg/abc" --channel 123
  chatguard check -c lists.yaml --content "hello" --dm --role staff`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkContent, "content", "", "message content to check")
	checkCmd.Flags().StringVar(&checkChannel, "channel", "", "channel id")
	checkCmd.Flags().StringVar(&checkCategory, "category", "", "channel category id")
	checkCmd.Flags().BoolVar(&checkDM, "dm", false, "treat the message as a direct message")
	checkCmd.Flags().StringVar(&checkAuthor, "author", "", "author id")
	checkCmd.Flags().StringSliceVar(&checkRoles, "role", nil, "author role (repeatable)")
	checkCmd.Flags().StringSliceVar(&checkAttachments, "attachment", nil, "attachment filename (repeatable)")
	_ = checkCmd.MarkFlagRequired("content")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config/-c is required for check command")
	}

	eng, err := engine.New(engine.Config{
		Logger: logger,
		Path:   cfgFile,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ev := &api.Event{
		ChannelID:   checkChannel,
		CategoryID:  checkCategory,
		DM:          checkDM,
		AuthorID:    checkAuthor,
		AuthorRoles: checkRoles,
		Content:     checkContent,
		Attachments: checkAttachments,
	}

	rec, err := eng.Evaluate(context.Background(), ev)
	if err != nil {
		return fmt.Errorf("evaluation error: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
