package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yigit/studentreg/internal/form"
)

// errInputClosed ends registration when stdin runs out mid-form
var errInputClosed = errors.New("input closed before the form was complete")

type prompt struct {
	field   string
	label   string
	hint    string
	choices []form.Choice
}

var registerPrompts = []prompt{
	{field: form.FieldFirstName, label: "First name"},
	{field: form.FieldLastName, label: "Last name"},
	{field: form.FieldEmail, label: "Email"},
	{field: form.FieldDateOfBirth, label: "Date of birth", hint: "YYYY-MM-DD"},
	{field: form.FieldStudentID, label: "Student ID"},
	{field: form.FieldPhone, label: "Phone"},
	{field: form.FieldStreet, label: "Street"},
	{field: form.FieldCity, label: "City"},
	{field: form.FieldState, label: "State"},
	{field: form.FieldZipCode, label: "Zip code"},
	{field: form.FieldCountry, label: "Country", choices: form.CountryOptions},
	{field: form.FieldEnrollmentDate, label: "Enrollment date", hint: "YYYY-MM-DD"},
	{field: form.FieldCourse, label: "Course"},
	{field: form.FieldDepartment, label: "Department", choices: form.DepartmentOptions},
	{field: form.FieldYear, label: "Year of study", hint: "1-6"},
	{field: form.FieldGuardianName, label: "Guardian name", hint: "optional"},
	{field: form.FieldGuardianPhone, label: "Guardian phone", hint: "optional"},
}

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register a student interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())
			ctrl := form.NewController(opts.client(), form.WithToastDuration(0), form.WithLogger(opts.logger))

			color.New(color.FgCyan).Fprintln(out, "\n=== Student Registration ===")
			pending := registerPrompts
			for {
				for _, p := range pending {
					if err := ask(out, in, ctrl, p); err != nil {
						return err
					}
				}

				_, err := ctrl.Submit(cmd.Context())
				if errors.Is(err, form.ErrInvalidForm) {
					pending = failedPrompts(out, ctrl.Errors())
					continue
				}

				printToast(out, ctrl.Toast())
				return err
			}
		},
	}
}

func ask(out io.Writer, in *bufio.Scanner, ctrl *form.Controller, p prompt) error {
	values := ctrl.Values()
	current, _ := values.Get(p.field)

	if len(p.choices) > 0 {
		for i, c := range p.choices {
			fmt.Fprintf(out, "  %2d) %s\n", i+1, c.Label)
		}
	}

	label := p.label
	if p.hint != "" {
		label += " (" + p.hint + ")"
	}
	if current != "" {
		label += " [" + current + "]"
	}
	fmt.Fprintf(out, "%s: ", label)

	if !in.Scan() {
		if err := in.Err(); err != nil {
			return err
		}
		return errInputClosed
	}
	answer := strings.TrimSpace(in.Text())
	if answer == "" {
		answer = current
	}

	if len(p.choices) > 0 {
		return ctrl.HandleSelectChange(p.field, resolveChoice(p.choices, answer))
	}
	return ctrl.HandleChange(p.field, answer)
}

// resolveChoice accepts a 1-based index, a value or a label
func resolveChoice(choices []form.Choice, answer string) string {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1].Value
	}
	for _, c := range choices {
		if strings.EqualFold(c.Value, answer) || strings.EqualFold(c.Label, answer) {
			return c.Value
		}
	}
	return answer
}

func failedPrompts(out io.Writer, errs map[string]string) []prompt {
	red := color.New(color.FgRed)
	red.Fprintln(out, "\nPlease correct the following:")

	var retry []prompt
	for _, p := range registerPrompts {
		if msg, ok := errs[p.field]; ok {
			red.Fprintf(out, "  - %s: %s\n", p.label, msg)
			retry = append(retry, p)
		}
	}
	return retry
}

func printToast(out io.Writer, t form.Toast) {
	if !t.Visible {
		return
	}
	c := color.New(color.FgGreen)
	if t.Type == form.ToastError {
		c = color.New(color.FgRed)
	}
	c.Fprintln(out, t.Message)
}
