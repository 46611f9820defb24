package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var numberCmd = &cobra.Command{
	Use:   "number",
	Short: "Print the next invoice number in the sequence",
	RunE:  runNumber,
}

func init() {
	rootCmd.AddCommand(numberCmd)
}

func runNumber(cmd *cobra.Command, args []string) error {
	d, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer d.Close()
	<-d.Seeded

	repos := buildRepositories(d)
	number, err := repos.invoices.GenerateInvoiceNumber(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(number)
	return nil
}
