package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/study-tracker/internal/model"
)

func init() {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect the study schedule template",
	}

	dayCmd := &cobra.Command{
		Use:   "day <date>",
		Short: "Show the planned topics and day type for a date",
		Args:  cobra.ExactArgs(1),
		Run:   runScheduleDay,
	}

	weekCmd := &cobra.Command{
		Use:   "week <date>",
		Short: "Show seven days of the plan starting at a date",
		Args:  cobra.ExactArgs(1),
		Run:   runScheduleWeek,
	}
	weekCmd.Flags().Int("days", 7, "Number of days to show")

	nextCmd := &cobra.Command{
		Use:   "next <date>",
		Short: "Show the next catch-up slot after a missed date",
		Args:  cobra.ExactArgs(1),
		Run:   runScheduleNext,
	}

	scheduleCmd.AddCommand(dayCmd, weekCmd, nextCmd)
	RootCmd.AddCommand(scheduleCmd)
}

func runScheduleDay(cmd *cobra.Command, args []string) {
	d, err := parseDateArg("date", args[0])
	if err != nil {
		exitErr("schedule day", err)
	}
	tmpl, err := loadTemplate()
	if err != nil {
		exitErr("load template", err)
	}
	printJSON(cmd, tmpl.Entry(d))
}

func runScheduleWeek(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	from, err := parseDateArg("date", args[0])
	if err != nil {
		exitErr("schedule week", err)
	}
	if days < 1 {
		days = 7
	}
	tmpl, err := loadTemplate()
	if err != nil {
		exitErr("load template", err)
	}
	printJSON(cmd, tmpl.Range(from, from.AddDate(0, 0, days-1)))
}

type nextSlot struct {
	From    string        `json:"from"`
	Date    string        `json:"date"`
	DayType model.DayType `json:"day_type"`
	Found   bool          `json:"found"`
}

func runScheduleNext(cmd *cobra.Command, args []string) {
	from, err := parseDateArg("date", args[0])
	if err != nil {
		exitErr("schedule next", err)
	}
	sched, tmpl, err := newScheduler()
	if err != nil {
		exitErr("load template", err)
	}

	d, found := sched.NextSlot(from)
	printJSON(cmd, nextSlot{
		From:    model.FormatDate(from),
		Date:    model.FormatDate(d),
		DayType: tmpl.DayType(d),
		Found:   found,
	})
}
