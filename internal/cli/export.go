package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/study-tracker/internal/importer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <sba|telegram>",
		Short: "Export records as JSON",
		Long:  "Export SBA entries or Telegram questions as a JSON array accepted by import.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	kind, err := importer.ParseKind(args[0])
	if err != nil {
		exitErr("export", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	switch kind {
	case importer.KindSBA:
		entries, err := s.ExportSBA(cmd.Context())
		if err != nil {
			exitErr("export", err)
		}
		printJSON(cmd, entries)
	case importer.KindTelegram:
		questions, err := s.ExportTelegram(cmd.Context())
		if err != nil {
			exitErr("export", err)
		}
		printJSON(cmd, questions)
	}
}
