package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"text/tabwriter"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out        io.Writer
	mapper     *navigation.Mapper
	dispatcher *navigation.Dispatcher
}

func newCommandLine(out io.Writer, mapper *navigation.Mapper, dispatcher *navigation.Dispatcher) *commandLine {
	return &commandLine{out: out, mapper: mapper, dispatcher: dispatcher}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  routes - print the route table")
	fmt.Fprintln(cli.out, "  resolve -path PATH [-role Admin|User] - print the view & screen of a path")
	fmt.Fprintln(cli.out, "  hashpassword - print the bcrypt hash of a password, for ADMINPASSWORDHASH")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resolveCmd := flag.NewFlagSet("resolve", flag.ContinueOnError)
	resolveCmd.SetOutput(cli.out)
	resolvePath := resolveCmd.String("path", "", "The path to resolve, e.g. /dashboard.")
	resolveRole := resolveCmd.String("role", string(user.RoleUser), "The role the screen is selected for.")

	switch args[1] {
	case "routes":
		return cli.routes()
	case "resolve":
		if err := resolveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resolvePath == "" {
			resolveCmd.Usage()
			return errHelp
		}
		return cli.resolve(*resolvePath, user.Role(*resolveRole))
	case "hashpassword":
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) routes() error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tVIEW\tADMIN ONLY")
	for _, r := range cli.mapper.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%t\n", r.Path, r.View, r.View.AdminOnly())
	}
	return w.Flush()
}

func (cli *commandLine) resolve(path string, role user.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}
	view, err := cli.mapper.ResolveView(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	desc := cli.dispatcher.Select(view, role)

	fmt.Fprintf(cli.out, "view:   %s\n", view)
	fmt.Fprintf(cli.out, "screen: %s\n", desc.Screen)
	if desc.Reason != "" {
		fmt.Fprintf(cli.out, "reason: %s\n", desc.Reason)
	}
	return nil
}

func (cli *commandLine) hashPassword(pwd []byte) error {
	hash, err := bcrypt.GenerateFromPassword(pwd, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(hash))
	return nil
}
