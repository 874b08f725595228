package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/study-tracker/internal/store"
)

func init() {
	sbaCmd := &cobra.Command{
		Use:   "sba",
		Short: "SBA test entries",
	}
	sbaList := &cobra.Command{
		Use:   "list",
		Short: "List SBA entries",
		Run:   runSBAList,
	}
	addListFlags(sbaList)
	sbaDone := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an SBA entry completed",
		Args:  cobra.ExactArgs(1),
		Run:   runSBADone,
	}
	sbaDone.Flags().Bool("undo", false, "Mark as not completed")
	sbaCmd.AddCommand(sbaList, sbaDone)

	tgCmd := &cobra.Command{
		Use:     "telegram",
		Aliases: []string{"tg"},
		Short:   "Telegram question entries",
	}
	tgList := &cobra.Command{
		Use:   "list",
		Short: "List Telegram questions",
		Run:   runTelegramList,
	}
	addListFlags(tgList)
	tgDone := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a Telegram question completed",
		Args:  cobra.ExactArgs(1),
		Run:   runTelegramDone,
	}
	tgDone.Flags().Bool("undo", false, "Mark as not completed")
	tgSearch := &cobra.Command{
		Use:   "search [query]",
		Short: "Search Telegram questions by text",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTelegramSearch,
	}
	tgSearch.Flags().IntP("limit", "l", 20, "Max results")
	tgCmd.AddCommand(tgList, tgDone, tgSearch)

	RootCmd.AddCommand(sbaCmd, tgCmd)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Earliest date (inclusive)")
	cmd.Flags().String("to", "", "Latest date (inclusive)")
	cmd.Flags().Bool("pending", false, "Only entries not yet completed")
	cmd.Flags().Bool("completed", false, "Only completed entries")
	cmd.Flags().Bool("no-placeholders", false, "Hide placeholder entries")
	cmd.Flags().IntP("limit", "l", 100, "Max results")
}

func listParams(cmd *cobra.Command) (store.ListParams, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	pending, _ := cmd.Flags().GetBool("pending")
	completed, _ := cmd.Flags().GetBool("completed")
	noPlaceholders, _ := cmd.Flags().GetBool("no-placeholders")
	limit, _ := cmd.Flags().GetInt("limit")

	p := store.ListParams{From: from, To: to, Limit: limit}
	for name, v := range map[string]string{"from": from, "to": to} {
		if v == "" {
			continue
		}
		if _, err := parseDateArg(name, v); err != nil {
			return p, err
		}
	}
	if pending && completed {
		return p, fmt.Errorf("--pending and --completed are mutually exclusive")
	}
	if pending || completed {
		p.Completed = &completed
	}
	if noPlaceholders {
		f := false
		p.Placeholder = &f
	}
	return p, nil
}

func runSBAList(cmd *cobra.Command, args []string) {
	p, err := listParams(cmd)
	if err != nil {
		exitErr("sba list", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.ListSBA(cmd.Context(), p)
	if err != nil {
		exitErr("sba list", err)
	}
	printJSON(cmd, entries)
}

func runTelegramList(cmd *cobra.Command, args []string) {
	p, err := listParams(cmd)
	if err != nil {
		exitErr("telegram list", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	questions, err := s.ListTelegram(cmd.Context(), p)
	if err != nil {
		exitErr("telegram list", err)
	}
	printJSON(cmd, questions)
}

func runSBADone(cmd *cobra.Command, args []string) {
	runSetCompleted(cmd, args[0], "sba done", func(ctx context.Context, s *store.SQLiteStore, id string, done bool) error {
		return s.SetSBACompleted(ctx, id, done)
	})
}

func runTelegramDone(cmd *cobra.Command, args []string) {
	runSetCompleted(cmd, args[0], "telegram done", func(ctx context.Context, s *store.SQLiteStore, id string, done bool) error {
		return s.SetTelegramCompleted(ctx, id, done)
	})
}

func runSetCompleted(cmd *cobra.Command, id, op string, set func(context.Context, *store.SQLiteStore, string, bool) error) {
	undo, _ := cmd.Flags().GetBool("undo")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := set(cmd.Context(), s, id, !undo); err != nil {
		exitErr(op, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"completed":%t}`+"\n", id, !undo)
}

func runTelegramSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.SearchTelegram(cmd.Context(), store.SearchParams{Query: query, Limit: limit})
	if err != nil {
		exitErr("telegram search", err)
	}
	printJSON(cmd, results)
}
