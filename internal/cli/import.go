package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rcliao/study-tracker/internal/importer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <sba|telegram> [file]",
		Short: "Validate and bulk-import SBA entries or Telegram questions",
		Long: "Validate a JSON array of records (from a file or stdin) and print a per-row report. " +
			"Records are stored only when every row is valid. Use --dry-run to validate without storing.",
		Args: cobra.RangeArgs(1, 2),
		Run:  runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Validate only, never write to the store")

	RootCmd.AddCommand(cmd)
}

type importResult struct {
	Report   importer.Report `json:"report"`
	DryRun   bool            `json:"dry_run"`
	Imported int             `json:"imported"`
}

func runImport(cmd *cobra.Command, args []string) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	kind, err := importer.ParseKind(args[0])
	if err != nil {
		exitErr("import", err)
	}

	var in io.Reader = os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			exitErr("open input", err)
		}
		defer f.Close()
		in = f
	}

	data, err := importer.Decode(in)
	if err != nil {
		exitErr("import", err)
	}

	report, err := importer.Validate(kind, data)
	if err != nil {
		exitErr("import", err)
	}
	log.Info().
		Str("kind", string(kind)).
		Int("total", report.Summary.Total).
		Int("errors", report.Summary.Errors).
		Int("duplicates", report.Summary.Duplicates).
		Msg("bulk import validated")

	res := importResult{Report: report, DryRun: dryRun}
	if !report.Valid {
		printJSON(cmd, res)
		os.Exit(1)
	}
	if dryRun {
		printJSON(cmd, res)
		return
	}

	n, err := storeValidRows(cmd.Context(), report)
	if err != nil {
		exitErr("import", err)
	}
	res.Imported = n

	printJSON(cmd, res)
}

func storeValidRows(ctx context.Context, report importer.Report) (int, error) {
	s, err := openStore()
	if err != nil {
		return 0, err
	}
	defer s.Close()

	switch report.Kind {
	case importer.KindSBA:
		stored, err := s.InsertSBA(ctx, report.SBAEntries())
		return len(stored), err
	case importer.KindTelegram:
		stored, err := s.InsertTelegram(ctx, report.TelegramQuestions())
		return len(stored), err
	}
	return 0, nil
}
