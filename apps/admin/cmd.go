package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/bursary/core/payment"
	"github.com/trezcool/bursary/core/student"
	"github.com/trezcool/bursary/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *sqlx.DB
	usrSvc user.ServiceInterface
	stdSvc student.ServiceInterface
	pmtSvc payment.ServiceInterface
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.output(), "Usage:")
	fmt.Fprintln(cli.output(), "  migrate COMMAND [ARGS] - run a goose command (up, down, status, version, ...)")
	fmt.Fprintln(cli.output(), "  adduser -name NAME -username USERNAME -email EMAIL [-admin] - create or update a user")
	fmt.Fprintln(cli.output(), "  resetpassword -username USERNAME|EMAIL - reset user's password")
	fmt.Fprintln(cli.output(), "  addstudent -first FIRST -last LAST -total AMOUNT [-matricule M] [-email E] [-phone P] - register a student")
	fmt.Fprintln(cli.output(), "  reconcile -matricule MATRICULE - compare a student's paid amount with the sum of their payments")
}

func (cli *commandLine) output() io.Writer {
	if cli.out == nil {
		return os.Stdout
	}
	return cli.out
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword(label string) (string, error) {
	fmt.Fprint(cli.output(), label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.output())
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant every role to the user.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ContinueOnError)
	addStudentMatricule := addStudentCmd.String("matricule", "", "The student's matricule. Generated when empty.")
	addStudentFirst := addStudentCmd.String("first", "", "The student's first name.")
	addStudentLast := addStudentCmd.String("last", "", "The student's last name.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email, receipts are sent to it.")
	addStudentPhone := addStudentCmd.String("phone", "", "The student's phone number.")
	addStudentTotal := addStudentCmd.String("total", "", "The tuition total, e.g. 500000.")

	reconcileCmd := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	reconcileMatricule := reconcileCmd.String("matricule", "", "The student's matricule.")

	for _, fs := range []*flag.FlagSet{addUserCmd, resetPasswordCmd, addStudentCmd, reconcileCmd} {
		fs.SetOutput(cli.output())
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addUserName == "" || (*addUserUname == "" && *addUserEmail == "") {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserUname, *addUserEmail, pwd, *addUserAdmin)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)

	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.addStudent(studentArgs{
			matricule: *addStudentMatricule,
			firstName: *addStudentFirst,
			lastName:  *addStudentLast,
			email:     *addStudentEmail,
			phone:     *addStudentPhone,
			total:     *addStudentTotal,
		})

	case "reconcile":
		if err := reconcileCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.reconcile(*reconcileMatricule)

	default:
		cli.printUsage()
		return errHelp
	}
}
