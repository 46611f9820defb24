package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [customers|items|invoices]",
	Short: "Subscribe to a table and print each snapshot as it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer d.Close()
	<-d.Seeded

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	repos := buildRepositories(d)

	switch args[0] {
	case "customers":
		snapshots, err := repos.customers.All().Subscribe(ctx)
		if err != nil {
			return err
		}
		for rows := range snapshots {
			fmt.Printf("-- %d customers --\n", len(rows))
			for _, c := range rows {
				fmt.Printf("  #%d %s <%s>\n", c.ID, c.Name, c.Email)
			}
		}
	case "items":
		snapshots, err := repos.items.All().Subscribe(ctx)
		if err != nil {
			return err
		}
		for rows := range snapshots {
			fmt.Printf("-- %d items --\n", len(rows))
			for _, it := range rows {
				fmt.Printf("  #%d %s %.2f/%s\n", it.ID, it.Name, it.Price, it.Unit)
			}
		}
	case "invoices":
		snapshots, err := repos.invoices.All().Subscribe(ctx)
		if err != nil {
			return err
		}
		for rows := range snapshots {
			fmt.Printf("-- %d invoices --\n", len(rows))
			for _, inv := range rows {
				fmt.Printf("  %s customer=%d total=%.2f %s\n", inv.InvoiceNumber, inv.CustomerID, inv.Total, inv.Status)
			}
		}
	default:
		return fmt.Errorf("unknown table %q", args[0])
	}
	return nil
}
