package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/Dias221467/Wish_Collector/internal/repository"
	"github.com/Dias221467/Wish_Collector/internal/services"
	"github.com/Dias221467/Wish_Collector/pkg/lock"
	"github.com/spf13/cobra"
)

type options struct {
	dataFile    string
	lockTimeout time.Duration
}

func (o *options) service() *services.WishService {
	store := repository.NewFileWishRepository(o.dataFile,
		repository.WithLocker(lock.Flock{Timeout: o.lockTimeout}))
	return services.NewWishService(store)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wishctl",
		Short: "Inspect and append to a wish store file",
		Long: `wishctl works directly on the JSON store file used by the wish server.
It takes the same exclusive lock, so it is safe to run while the server is up.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataFile, "file", "data/wishes.json", "Path to the store file")
	root.PersistentFlags().DurationVar(&opts.lockTimeout, "lock-timeout", 0, "Give up waiting for the lock after this long (0 waits forever)")

	root.AddCommand(newAddCmd(opts), newListCmd(opts), newCountCmd(opts))
	return root
}

func newAddCmd(opts *options) *cobra.Command {
	var in models.WishInput

	cmd := &cobra.Command{
		Use:   "add <wish>",
		Short: "Validate and append a wish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Wish = args[0]
			created, err := opts.service().SubmitWish(cmd.Context(), in)
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				return errors.New(verr.Message)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Category, "category", "", "Wish category (required)")
	cmd.Flags().StringVar(&in.Timeframe, "timeframe", "", "Wish timeframe (required)")
	cmd.Flags().StringVar(&in.Intensity, "intensity", "", "Intensity from 1 to 10")
	cmd.Flags().StringVar(&in.Name, "name", "", "Submitter name (default Anonymous)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Submitter email")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all stored wishes as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wishes, err := opts.service().ListWishes(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(wishes)
		},
	}
}

func newCountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored wishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := opts.service().CountWishes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
