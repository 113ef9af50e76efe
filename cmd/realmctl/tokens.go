package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/feral-file/ff-infusion/internal/amount"
	"github.com/feral-file/ff-infusion/internal/domain"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Inspect infused tokens",
}

var tokensGetCmd = &cobra.Command{
	Use:   "get <realm-id> <collection> <token-id>",
	Short: "Print the balance and the amount claimable now of a token",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		realmID, err := parseRealmID(args[0])
		if err != nil {
			return err
		}
		collection, err := domain.ParseAddress(args[1])
		if err != nil {
			return err
		}
		tokenID, err := domain.ParseTokenID(args[2])
		if err != nil {
			return err
		}

		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			data, err := d.engine.TokenData(ctx, domain.NewTokenKey(realmID, collection, tokenID), time.Now())
			if err != nil {
				return err
			}

			if outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "token\t%s\n", data.Key.String())
			fmt.Fprintf(w, "infused\t%s\n", strconv.FormatBool(data.Infused))
			fmt.Fprintf(w, "balance\t%s\n", amountString(data.Balance))
			fmt.Fprintf(w, "claimable\t%s\n", amountString(data.Claimable))
			if data.Infused {
				fmt.Fprintf(w, "last claim at\t%s\n", time.Unix(data.LastClaimAt, 0).UTC().Format(time.RFC3339))
				fmt.Fprintf(w, "fully vested at\t%s\n", time.Unix(data.FullyVestedAt, 0).UTC().Format(time.RFC3339))
			}
			return w.Flush()
		})
	},
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Fund accounts of the self hosted token ledger",
}

var ledgerMintCmd = &cobra.Command{
	Use:   "mint <token> <account> <amount>",
	Short: "Credit an account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseLedgerArgs(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			if err := d.ledger.Mint(ctx, parsed.token, parsed.account, parsed.amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "minted %s to %s\n", amountString(parsed.amount), parsed.account.Hex())
			return nil
		})
	},
}

var ledgerApproveCmd = &cobra.Command{
	Use:   "approve <token> <owner> <amount>",
	Short: "Set the allowance of the escrow over an owner's balance",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseLedgerArgs(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		escrow, err := domain.ParseAddress(cfg.Engine.EscrowAddress)
		if err != nil {
			return fmt.Errorf("invalid escrow address: %w", err)
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			if err := d.ledger.Approve(ctx, parsed.token, parsed.account, escrow, parsed.amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved %s of %s to escrow\n", amountString(parsed.amount), parsed.account.Hex())
			return nil
		})
	},
}

var ledgerBalanceCmd = &cobra.Command{
	Use:   "balance <token> <account>",
	Short: "Print the balance of an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := parseLedgerArgs(args[0], args[1], "0")
		if err != nil {
			return err
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			balance, err := d.ledger.BalanceOf(ctx, parsed.token, parsed.account)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), amountString(balance))
			return nil
		})
	},
}

func init() {
	tokensCmd.AddCommand(tokensGetCmd)
	ledgerCmd.AddCommand(ledgerMintCmd, ledgerApproveCmd, ledgerBalanceCmd)
	rootCmd.AddCommand(tokensCmd, ledgerCmd)
}

type ledgerArgs struct {
	token   common.Address
	account common.Address
	amount  *big.Int
}

func parseLedgerArgs(token, account, value string) (ledgerArgs, error) {
	var out ledgerArgs
	var err error
	if out.token, err = domain.ParseAddress(token); err != nil {
		return out, fmt.Errorf("token: %w", err)
	}
	if out.account, err = domain.ParseAddress(account); err != nil {
		return out, fmt.Errorf("account: %w", err)
	}
	if out.amount, err = amount.ParseUnits(value, decimals); err != nil {
		return out, err
	}
	return out, nil
}

func amountString(v *big.Int) string {
	return amount.FormatUnits(v, decimals)
}
