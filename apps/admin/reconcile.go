package main

import (
	"context"
	"fmt"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

var errUnbalanced = errors.New("paid amount does not match the sum of payments")

// reconcile prints the audit of one student account and fails when it is off.
func (cli *commandLine) reconcile(matricule string) error {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(matricule, "matricule"),
	).Check(); err != nil {
		return err
	}

	rec, err := cli.pmtSvc.Reconcile(context.Background(), matricule)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.output(), "%s: paid %s, %d payments summing to %s\n",
		rec.Matricule, rec.TuitionPaid.StringFixed(2), rec.Payments, rec.PaymentsSum.StringFixed(2))
	if !rec.Balanced() {
		return errUnbalanced
	}
	return nil
}
