package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/feral-file/ff-infusion/internal/domain"
)

var callerFlag string

var realmsCmd = &cobra.Command{
	Use:   "realms",
	Short: "Create, inspect and modify realms",
}

var realmsCreateCmd = &cobra.Command{
	Use:   "create <realm.yaml>",
	Short: "Create a realm from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseCaller()
		if err != nil {
			return err
		}
		input, err := loadRealmFile(args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			realmID, err := d.engine.CreateRealm(ctx, caller, input, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created realm %d\n", realmID)
			return nil
		})
	},
}

var realmsGetCmd = &cobra.Command{
	Use:   "get <realm-id>",
	Short: "Print the configuration of a realm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		realmID, err := parseRealmID(args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			realm, err := d.engine.RealmConfig(ctx, realmID)
			if err != nil {
				return err
			}
			printRealm(cmd, realm)
			return nil
		})
	},
}

var realmsMembersCmd = &cobra.Command{
	Use:   "members <realm-id> <admin|infuser|collection|proxy>",
	Short: "List a membership set of a realm",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		realmID, err := parseRealmID(args[0])
		if err != nil {
			return err
		}
		role := domain.Role(args[1])
		if !role.Valid() {
			return fmt.Errorf("unknown role: %s", args[1])
		}
		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			members, err := d.engine.Members(ctx, realmID, role)
			if err != nil {
				return err
			}
			for _, m := range members {
				fmt.Fprintln(cmd.OutOrStdout(), m.Hex())
			}
			return nil
		})
	},
}

var modifyFlags struct {
	addAdmins, removeAdmins           []string
	addInfusers, removeInfusers       []string
	addCollections, removeCollections []string
}

var realmsModifyCmd = &cobra.Command{
	Use:   "modify <realm-id>",
	Short: "Add or remove realm members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseCaller()
		if err != nil {
			return err
		}
		realmID, err := parseRealmID(args[0])
		if err != nil {
			return err
		}

		input := domain.ModifyRealmInput{RealmID: realmID}
		lists := []struct {
			values []string
			out    *[]common.Address
		}{
			{modifyFlags.addAdmins, &input.AdminsToAdd},
			{modifyFlags.removeAdmins, &input.AdminsToRemove},
			{modifyFlags.addInfusers, &input.InfusersToAdd},
			{modifyFlags.removeInfusers, &input.InfusersToRemove},
			{modifyFlags.addCollections, &input.CollectionsToAdd},
			{modifyFlags.removeCollections, &input.CollectionsToRemove},
		}
		for _, l := range lists {
			if *l.out, err = domain.ParseAddresses(l.values); err != nil {
				return err
			}
		}

		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			if err := d.engine.ModifyRealm(ctx, caller, input, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "modified realm %d\n", realmID)
			return nil
		})
	},
}

var realmsProxyCmd = &cobra.Command{
	Use:   "proxy <realm-id> <allow|deny> <address>",
	Short: "Allow or deny an infusion proxy",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseCaller()
		if err != nil {
			return err
		}
		realmID, err := parseRealmID(args[0])
		if err != nil {
			return err
		}
		proxy, err := domain.ParseAddress(args[2])
		if err != nil {
			return err
		}

		return withDeps(cmd, func(ctx context.Context, d *deps) error {
			switch args[1] {
			case "allow":
				err = d.engine.AllowInfusionProxy(ctx, caller, realmID, proxy, time.Now())
			case "deny":
				err = d.engine.DenyInfusionProxy(ctx, caller, realmID, proxy, time.Now())
			default:
				return fmt.Errorf("unknown proxy action: %s", args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s proxy %s in realm %d\n", args[1], proxy.Hex(), realmID)
			return nil
		})
	},
}

func init() {
	realmsCmd.PersistentFlags().StringVar(&callerFlag, "caller", "", "Address the command acts as")

	f := realmsModifyCmd.Flags()
	f.StringSliceVar(&modifyFlags.addAdmins, "add-admin", nil, "Admin to add")
	f.StringSliceVar(&modifyFlags.removeAdmins, "remove-admin", nil, "Admin to remove")
	f.StringSliceVar(&modifyFlags.addInfusers, "add-infuser", nil, "Infuser to add")
	f.StringSliceVar(&modifyFlags.removeInfusers, "remove-infuser", nil, "Infuser to remove")
	f.StringSliceVar(&modifyFlags.addCollections, "add-collection", nil, "Collection to add")
	f.StringSliceVar(&modifyFlags.removeCollections, "remove-collection", nil, "Collection to remove")

	realmsCmd.AddCommand(realmsCreateCmd, realmsGetCmd, realmsMembersCmd, realmsModifyCmd, realmsProxyCmd)
	rootCmd.AddCommand(realmsCmd)
}

func parseCaller() (common.Address, error) {
	if callerFlag == "" {
		return common.Address{}, fmt.Errorf("--caller is required")
	}
	return domain.ParseAddress(callerFlag)
}

func parseRealmID(s string) (uint64, error) {
	realmID, err := strconv.ParseUint(s, 10, 64)
	if err != nil || realmID == 0 {
		return 0, fmt.Errorf("invalid realm id: %s", s)
	}
	return realmID, nil
}

func printRealm(cmd *cobra.Command, realm *domain.Realm) {
	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		_ = enc.Encode(realm)
		return
	}

	c := realm.Config.Constraints
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"id", strconv.FormatUint(realm.ID, 10)},
		{"name", realm.Name},
		{"description", realm.Description},
		{"token", realm.Config.Token.Hex()},
		{"daily rate", amountString(realm.Config.DailyRate)},
		{"min infusion", amountString(c.MinInfusionAmount)},
		{"max infusion", amountString(c.MaxInfusionAmount)},
		{"max token balance", amountString(c.MaxTokenBalance)},
		{"min claim", amountString(c.MinClaimAmount)},
		{"require nft owned", strconv.FormatBool(c.RequireNftIsOwned)},
		{"allow multi infuse", strconv.FormatBool(c.AllowMultiInfuse)},
		{"allow public infusion", strconv.FormatBool(c.AllowPublicInfusion)},
		{"allow all collections", strconv.FormatBool(c.AllowAllCollections)},
		{"created at", realm.CreatedAt.Format(time.RFC3339)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
	_ = w.Flush()
}
