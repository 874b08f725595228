package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rcliao/study-tracker/internal/catchup"
	"github.com/rcliao/study-tracker/internal/model"
	"github.com/rcliao/study-tracker/internal/store"
)

func init() {
	catchupCmd := &cobra.Command{
		Use:     "catchup",
		Aliases: []string{"cu"},
		Short:   "Manage the queue of missed tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Defer a missed task to the next off or revision day",
		Run:   runCatchUpAdd,
	}
	addCmd.Flags().String("date", "", "Date the task was missed (required)")
	addCmd.Flags().StringP("topic", "t", "", "Task or category label (required)")
	addCmd.Flags().String("time", "", "Estimated duration label, e.g. 2h")
	addCmd.Flags().StringArrayP("item", "i", nil, "Sub-task carried with the task (repeatable)")
	addCmd.MarkFlagRequired("date")
	addCmd.MarkFlagRequired("topic")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List queued catch-up items in queue order",
		Run:   runCatchUpList,
	}
	listCmd.Flags().String("due", "", "Only items rescheduled on or before this date")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the date or details of a queued item",
		Args:  cobra.ExactArgs(1),
		Run:   runCatchUpUpdate,
	}
	updateCmd.Flags().String("new-date", "", "Override the suggested make-up date")
	updateCmd.Flags().StringP("topic", "t", "", "New task label")
	updateCmd.Flags().String("time", "", "New duration label")
	updateCmd.Flags().StringArrayP("item", "i", nil, "Replace sub-tasks (repeatable)")

	rmCmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"done"},
		Short:   "Remove a queued item once it is completed",
		Args:    cobra.ExactArgs(1),
		Run:     runCatchUpRm,
	}

	catchupCmd.AddCommand(addCmd, listCmd, updateCmd, rmCmd)
	RootCmd.AddCommand(catchupCmd)
}

// loadQueue rebuilds the in-memory queue from the persisted items.
func loadQueue(ctx context.Context, s store.CatchUpStore, sched *catchup.Scheduler) (*catchup.Queue, error) {
	items, err := s.ListCatchUp(ctx)
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}
	return catchup.NewQueue(sched, items...), nil
}

func runCatchUpAdd(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	topic, _ := cmd.Flags().GetString("topic")
	timeLabel, _ := cmd.Flags().GetString("time")
	items, _ := cmd.Flags().GetStringArray("item")

	missed, err := parseDateArg("date", dateStr)
	if err != nil {
		exitErr("catchup add", err)
	}

	sched, _, err := newScheduler()
	if err != nil {
		exitErr("load template", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	q, err := loadQueue(cmd.Context(), s, sched)
	if err != nil {
		exitErr("catchup add", err)
	}

	if _, found := sched.NextSlot(missed); !found {
		log.Warn().
			Str("date", dateStr).
			Int("window_days", sched.Window).
			Msg("no off or revision day in scan window, using fallback date")
	}

	item := q.Add(missed, topic, catchup.Task{Time: timeLabel, Items: items})
	if err := s.SaveCatchUp(cmd.Context(), item); err != nil {
		exitErr("catchup add", err)
	}

	printJSON(cmd, item)
}

func runCatchUpList(cmd *cobra.Command, args []string) {
	due, _ := cmd.Flags().GetString("due")
	if due != "" {
		if _, err := parseDateArg("due", due); err != nil {
			exitErr("catchup list", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	items, err := s.ListCatchUp(cmd.Context())
	if err != nil {
		exitErr("catchup list", err)
	}

	if due != "" {
		filtered := []model.CatchUpItem{}
		for _, it := range items {
			if it.NewDate <= due {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	printJSON(cmd, items)
}

func runCatchUpUpdate(cmd *cobra.Command, args []string) {
	id := args[0]

	var u catchup.Update
	if cmd.Flags().Changed("new-date") {
		v, _ := cmd.Flags().GetString("new-date")
		if _, err := parseDateArg("new-date", v); err != nil {
			exitErr("catchup update", err)
		}
		u.NewDate = &v
	}
	if cmd.Flags().Changed("topic") {
		v, _ := cmd.Flags().GetString("topic")
		u.OriginalTopic = &v
	}
	if cmd.Flags().Changed("time") {
		v, _ := cmd.Flags().GetString("time")
		u.Time = &v
	}
	if cmd.Flags().Changed("item") {
		v, _ := cmd.Flags().GetStringArray("item")
		u.Items = v
	}

	sched, _, err := newScheduler()
	if err != nil {
		exitErr("load template", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	q, err := loadQueue(cmd.Context(), s, sched)
	if err != nil {
		exitErr("catchup update", err)
	}

	item, ok := q.Update(id, u)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"updated":false}`+"\n", id)
		return
	}
	if err := s.UpdateCatchUp(cmd.Context(), item); err != nil {
		exitErr("catchup update", err)
	}

	printJSON(cmd, item)
}

func runCatchUpRm(cmd *cobra.Command, args []string) {
	id := args[0]

	sched, _, err := newScheduler()
	if err != nil {
		exitErr("load template", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	q, err := loadQueue(cmd.Context(), s, sched)
	if err != nil {
		exitErr("catchup rm", err)
	}

	removed := q.Remove(id)
	if removed {
		if err := s.DeleteCatchUp(cmd.Context(), id); err != nil {
			exitErr("catchup rm", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"removed":%t}`+"\n", id, removed)
}
