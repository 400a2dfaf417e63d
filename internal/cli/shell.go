package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-roster/internal/editor"
)

const shellHelp = `Commands:
  list                      show the roster
  show <row>                show one row's values
  submit ID | Name | YYYY-MM-DD | Class | GPA
                            add a student, or save the row being edited
  edit <row>                start editing a row
  cancel                    stop editing; the next submit adds
  delete <row>              delete a row (asks first)
  help                      this text
  quit                      leave the shell`

// NewShellCommand creates the interactive shell, a line-based version of
// the roster form: submit adds or saves depending on whether a row is
// being edited.
func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the roster interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			a, err := openApp(opts, appOptions{
				logTo:   cmd.ErrOrStderr(),
				quiet:   true,
				notify:  printNotifier(out),
				confirm: promptConfirmer(in, out),
			})
			if err != nil {
				return err
			}
			defer a.Close()

			sh := &shell{editor: a.editor, in: in, out: out}
			if err := sh.run(); err != nil {
				return err
			}
			return a.editor.Flush()
		},
	}
}

type shell struct {
	editor *editor.Editor
	in     *bufio.Scanner
	out    io.Writer
}

var errQuit = errors.New("quit")

func (s *shell) prompt() {
	if i, ok := s.editor.Editing(); ok {
		fmt.Fprintf(s.out, "roster (editing %d)> ", i+1)
		return
	}
	fmt.Fprint(s.out, "roster> ")
}

func (s *shell) run() error {
	for {
		s.prompt()
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		err := s.exec(strings.TrimSpace(s.in.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

// exec runs one line. Editor failures have already been reported through
// the notifier, so only usage errors come back to be printed.
func (s *shell) exec(line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(s.out, shellHelp)
		return nil
	case "list", "ls":
		return writeRows(s.out, "text", s.editor.Rows())
	case "cancel":
		s.editor.Cancel()
		return nil
	case "submit":
		f, err := parseFormLine(rest)
		if err != nil {
			return err
		}
		if err := s.editor.Submit(f); err == nil {
			return writeRows(s.out, "text", s.editor.Rows())
		}
		return nil
	}

	i, err := rowIndex(rest)
	if err != nil {
		if cmd == "show" || cmd == "edit" || cmd == "delete" {
			return err
		}
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}

	switch cmd {
	case "show":
		f, err := s.editor.Get(i)
		if err != nil {
			return err
		}
		return writeForm(s.out, "text", f)
	case "edit":
		f, err := s.editor.Edit(i)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "submit", formLine(f))
		return nil
	case "delete":
		deleted, err := s.editor.Delete(i)
		if err != nil {
			return err
		}
		if deleted {
			return writeRows(s.out, "text", s.editor.Rows())
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}
