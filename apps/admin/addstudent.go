package main

import (
	"context"
	"fmt"

	"github.com/kat-co/vala"
	"github.com/shopspring/decimal"

	"github.com/trezcool/bursary/core"
	"github.com/trezcool/bursary/core/student"
)

type studentArgs struct {
	matricule string
	firstName string
	lastName  string
	email     string
	phone     string
	total     string
}

func (cli *commandLine) addStudent(args studentArgs) error {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(args.firstName, "first"),
		vala.StringNotEmpty(args.lastName, "last"),
		vala.StringNotEmpty(args.total, "total"),
	).Check(); err != nil {
		return err
	}

	total, err := decimal.NewFromString(core.CleanString(args.total))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "tuition_total", Error: "tuition_total must be a decimal number"})
	}

	std, err := cli.stdSvc.Create(context.Background(), student.NewStudent{
		Matricule:    args.matricule,
		FirstName:    args.firstName,
		LastName:     args.lastName,
		Email:        args.email,
		Phone:        args.phone,
		TuitionTotal: total,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.output(), "student %s created, tuition total %s\n", std.Matricule, std.TuitionTotal.StringFixed(2))
	return nil
}
