package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-roster/internal/editor"
)

// FormOptions holds the record flags shared by add and update.
type FormOptions struct {
	StudentID string
	FullName  string
	BirthDate string
	ClassName string
	GPA       string
}

func (o *FormOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.StudentID, "id", "", "student id")
	cmd.Flags().StringVar(&o.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&o.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.ClassName, "class", "", "class name")
	cmd.Flags().StringVar(&o.GPA, "gpa", "", "GPA between 0 and 4")
}

func (o *FormOptions) form() editor.Form {
	return editor.Form{
		StudentID: o.StudentID,
		FullName:  o.FullName,
		BirthDate: o.BirthDate,
		ClassName: o.ClassName,
		GPA:       editor.NumberText(o.GPA),
	}
}

// notifyTo keeps notifications off stdout when stdout carries JSON/YAML.
func notifyTo(cmd *cobra.Command, opts *RootOptions) io.Writer {
	if opts.Format == "text" {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

func openForCommand(cmd *cobra.Command, opts *RootOptions, confirm editor.Confirmer) (*app, error) {
	return openApp(opts, appOptions{
		logTo:   cmd.ErrOrStderr(),
		quiet:   true,
		notify:  printNotifier(notifyTo(cmd, opts)),
		confirm: confirm,
	})
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all students",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openForCommand(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			return writeRows(cmd.OutOrStdout(), opts.Format, a.editor.Rows())
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <row>",
		Short: "Show one student's values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := rowIndex(args[0])
			if err != nil {
				return err
			}
			a, err := openForCommand(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := a.editor.Get(i)
			if err != nil {
				return err
			}
			return writeForm(cmd.OutOrStdout(), opts.Format, f)
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	fo := &FormOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openForCommand(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			i, err := a.editor.Create(fo.form())
			if err != nil {
				return err
			}
			if opts.Format != "text" {
				return writeValue(cmd.OutOrStdout(), opts.Format, map[string]int{"row": i + 1})
			}
			return nil
		},
	}
	fo.bind(cmd)

	return cmd
}

// NewUpdateCommand creates the update command. Every field must be given:
// an update replaces the whole record.
func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	fo := &FormOptions{}

	cmd := &cobra.Command{
		Use:   "update <row>",
		Short: "Replace a student's values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := rowIndex(args[0])
			if err != nil {
				return err
			}
			a, err := openForCommand(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.editor.Replace(i, fo.form())
			if err != nil {
				return err
			}
			if opts.Format != "text" {
				return writeValue(cmd.OutOrStdout(), opts.Format, editor.FormFromRecord(r))
			}
			return nil
		},
	}
	fo.bind(cmd)

	return cmd
}

// NewDeleteCommand creates the delete command. Without --yes it asks on
// stdin first.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := rowIndex(args[0])
			if err != nil {
				return err
			}

			confirm := editor.Confirmer(editor.AlwaysConfirm)
			if !yes {
				confirm = promptConfirmer(bufio.NewScanner(cmd.InOrStdin()), cmd.OutOrStdout())
			}

			a, err := openForCommand(cmd, opts, confirm)
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := a.editor.Delete(i)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(notifyTo(cmd, opts), "Nothing deleted.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")

	return cmd
}

// promptConfirmer asks on out and reads the answer from in. Only "y" or
// "yes" (any case) count as yes; end of input counts as no.
func promptConfirmer(in *bufio.Scanner, out io.Writer) editor.Confirmer {
	return editor.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		if !in.Scan() {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "y", "yes":
			return true
		}
		return false
	})
}

// NewBackupCommand creates the backup command. When a stored roster could
// not be read it was set aside under its own key; this prints it, or with
// --discard deletes it.
func NewBackupCommand(opts *RootOptions) *cobra.Command {
	var discard bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Show or discard the copy of an unreadable roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openForCommand(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if discard {
				if err := a.store.DiscardBackup(); err != nil {
					return err
				}
				fmt.Fprintln(notifyTo(cmd, opts), "Backup discarded.")
				return nil
			}

			data, ok, err := a.store.Backup()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(notifyTo(cmd, opts), "No backup.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&discard, "discard", false, "delete the backup")

	return cmd
}
