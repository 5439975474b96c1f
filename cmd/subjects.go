package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proctorhq/proctor/internal/templates"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List registered subjects and available templates",
	RunE:  runSubjects,
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
}

func runSubjects(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	source, err := templates.Load(cfg.TemplatesPath)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	fmt.Println("Template subjects:")
	for _, name := range source.SubjectNames() {
		preset, _ := source.Preset(name)
		sessions := ""
		if preset.DoubleSession {
			sessions = ", double session"
		}
		fmt.Printf("  %-24s %d announcements (%d min%s)\n",
			name, len(source.Templates(name)), preset.DurationMinutes, sessions)
	}

	if cfg.DBPath == "" {
		fmt.Println("\nRoster persistence is disabled (no db_path configured).")
		return nil
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	roster, err := repo.List()
	if err != nil {
		return fmt.Errorf("listing subjects: %w", err)
	}

	fmt.Println("\nRegistered subjects:")
	if len(roster) == 0 {
		fmt.Println("  (none)")
		return nil
	}
	for _, s := range roster {
		sessions := ""
		if s.DoubleSession {
			sessions = "  double session"
		}
		fmt.Printf("  %-24s %s  %d min%s\n",
			s.Name, s.StartTime.Format("2006-01-02 15:04"), s.DurationMinutes, sessions)
	}
	return nil
}
