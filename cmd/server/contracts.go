package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	contractmodels "realty/internal/contract/models"
	dErrors "realty/pkg/domain-errors"
)

func contractsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Manage the contract database",
	}
	cmd.AddCommand(
		contractsInitCmd(opts),
		contractsSaveCmd(opts),
		contractsShowCmd(opts),
		contractsRollbackCmd(opts),
	)
	return cmd
}

func contractsInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database file and apply migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := newApp(ctx, opts.cfg, opts.registry, cmd.ErrOrStderr())
			defer a.close()

			if err := a.contracts.Initialize(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database ready at %s\n", opts.cfg.Database.Path)
			return nil
		},
	}
}

func contractsSaveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <contract.json>",
		Short: "Validate a contract document and insert it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read contract: %w", err)
			}
			schema, err := contractmodels.ContractSchema()
			if err != nil {
				return err
			}
			if err := schema.ValidateJSON(raw); err != nil {
				return err
			}
			var c contractmodels.RealEstateContract
			if err := json.Unmarshal(raw, &c); err != nil {
				return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid contract document")
			}
			c.Normalize()

			ctx := cmd.Context()
			a := newApp(ctx, opts.cfg, opts.registry, cmd.ErrOrStderr())
			defer a.close()

			if err := a.contracts.Initialize(ctx); err != nil {
				return err
			}
			result, err := a.contracts.Save(ctx, &c)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func contractsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid contract id %q", args[0])
			}

			ctx := cmd.Context()
			a := newApp(ctx, opts.cfg, opts.registry, cmd.ErrOrStderr())
			defer a.close()

			if err := a.contracts.Initialize(ctx); err != nil {
				return err
			}
			contract, err := a.contracts.Get(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, contract)
		},
	}
}

func contractsRollbackCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Revert the latest schema migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := newApp(ctx, opts.cfg, opts.registry, cmd.ErrOrStderr())
			defer a.close()

			if err := a.store.Initialize(ctx); err != nil {
				return err
			}
			if err := a.store.Rollback(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back latest migration in %s\n", opts.cfg.Database.Path)
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
