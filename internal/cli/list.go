package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yigit/studentreg/internal/app/models"
	"github.com/yigit/studentreg/internal/form"
	"github.com/yigit/studentreg/internal/pkg/helpers"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "dashboard"},
		Short:   "Show every registered student, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := opts.client().GetAllStudents(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load students: %w", err)
			}
			renderStudents(cmd.OutOrStdout(), students)
			return nil
		},
	}
}

func renderStudents(out io.Writer, students []models.Student) {
	color.New(color.FgYellow).Fprintf(out, "\nRegistered Students (%d)\n", len(students))
	if len(students) == 0 {
		fmt.Fprintln(out, "No students registered yet.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Name", "Student ID", "Email", "Department", "Year", "Location", "Registered"})
	table.SetAutoWrapText(false)
	for i, s := range students {
		registered := ""
		if !s.CreatedAt.IsZero() {
			registered = helpers.FormatISO(s.CreatedAt)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			s.FullName(),
			s.StudentID,
			s.Email,
			form.LabelFor(form.DepartmentOptions, s.Department),
			strconv.Itoa(s.Year),
			s.Address.City + ", " + form.LabelFor(form.CountryOptions, s.Address.Country),
			registered,
		})
	}
	table.Render()
}
