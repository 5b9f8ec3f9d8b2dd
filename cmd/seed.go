package main

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vonvha/Nutri-Smart/config"
	"github.com/vonvha/Nutri-Smart/seed"
	"github.com/vonvha/Nutri-Smart/utils"
)

func init() {
	var reset bool
	var file string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog, users and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := utils.NewLogger("nutrismart-seed", cfg.LogLevel)

			db, err := config.OpenDB(cfg)
			if err != nil {
				return err
			}

			data, err := seed.Default()
			if file != "" {
				raw, rerr := os.ReadFile(file)
				if rerr != nil {
					return pkgerrors.Wrap(rerr, "read seed file")
				}
				data, err = seed.Parse(raw)
			}
			if err != nil {
				return err
			}

			s := seed.NewSeeder(db, log)
			if reset {
				if err := s.Reset(cmd.Context()); err != nil {
					return err
				}
				log.Info().Msg("tables emptied")
			}
			return s.Run(cmd.Context(), data)
		},
	}
	seedCmd.Flags().BoolVar(&reset, "reset", false, "Delete existing rows before seeding")
	seedCmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to the embedded data)")
	rootCmd.AddCommand(seedCmd)
}
