package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/storage"
)

var (
	flagLimit  int
	flagDelete string
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List or delete recordings",
	Long: `Show the most recent recorded runs, newest first, or delete one.

Examples:
  snake recordings
  snake recordings --limit 5
  snake recordings --delete 1b4e28ba-2fa1-41d2-883f-0016d3cca427`,
	Args: cobra.NoArgs,
	RunE: runRecordings,
}

func init() {
	recordingsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of recordings to show")
	recordingsCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the recording with this ID")
}

func runRecordings(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDelete != "" {
		err := store.DeleteRecording(flagDelete)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no recording %q", flagDelete)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Deleted recording %s\n", flagDelete)
		return nil
	}

	recs, err := store.ListRecordings(flagLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record your first run!")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "Seed", "Grid", "TPS", "Ticks", "Recorded")

	for _, r := range recs {
		t.Row(
			r.ID,
			strconv.FormatInt(r.Seed, 10),
			fmt.Sprintf("%dx%d", r.Cols, r.Rows),
			strconv.Itoa(r.TickRate),
			strconv.FormatUint(r.Ticks, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println(t)
	fmt.Println()
	fmt.Println("Run 'snake replay <id>' to replay a recording.")
	return nil
}
