package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/store"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored universities and careers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			university, _ := cmd.Flags().GetString("university")

			s, err := store.Open(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			careers, err := s.ListCareers(cmd.Context(), university)
			if err != nil {
				return err
			}

			if jsonOut {
				type item struct {
					University string `json:"university"`
					Career     string `json:"career"`
					Semesters  int    `json:"semesters"`
					Subjects   int    `json:"subjects"`
				}
				items := make([]item, 0, len(careers))
				for _, c := range careers {
					items = append(items, item{
						University: c.University,
						Career:     c.Name,
						Semesters:  len(c.Semesters),
						Subjects:   c.SubjectCount(),
					})
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"careers": items,
					"count":   len(items),
				})
			}

			if len(careers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No curricula stored. Run 'mallas import' first.")
				return nil
			}

			current := ""
			for _, c := range careers {
				if c.University != current {
					current = c.University
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n", current)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-50s %2d semesters, %3d subjects\n",
					c.Name, len(c.Semesters), c.SubjectCount())
			}
			return nil
		},
	}

	cmd.Flags().String("university", "", "Only list careers of one university")
	return cmd
}
