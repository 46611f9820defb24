package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample customer and catalog items",
	Long: `Insert the sample rows a fresh install starts with, regardless of
whether the database file already existed. Rows are appended; existing
data is left alone.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	d, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer d.Close()
	<-d.Seeded

	if err := d.SeedSampleData(); err != nil {
		return err
	}
	log.Info().Msg("sample data inserted")
	return nil
}
