// netlockctl is a policy-authoring companion for the netlock library: it
// evaluates hosts against a policy file and prints the policy schema.
// Enforcement itself is purely in-process; this tool never installs hooks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netlock-dev/netlock/config"
	"github.com/netlock-dev/netlock/domain/policy"
	"github.com/netlock-dev/netlock/schema"
)

var policyPath string

var rootCmd = &cobra.Command{
	Use:   "netlockctl",
	Short: "netlockctl — author and test netlock egress policies",
	Long:  "netlockctl evaluates hosts against a netlock policy file and generates the policy file schema.",
}

var checkCmd = &cobra.Command{
	Use:   "check HOST...",
	Short: "Check whether hosts would be allowed under a policy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []string
		if policyPath != "" {
			p, err := config.LoadPolicyFile(policyPath)
			if err != nil {
				return err
			}
			entries = p.Allow
		}
		matcher := policy.NewMatcher(entries...)

		denied := false
		for _, host := range args {
			if matcher.Allowed(host) {
				fmt.Fprintf(cmd.OutOrStdout(), "allow %s\n", host)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "deny  %s\n", host)
				denied = true
			}
		}
		if denied {
			// Distinguishable exit without a usage dump.
			cmd.SilenceUsage = true
			return fmt.Errorf("one or more hosts denied")
		}
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the policy file format",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := schema.PolicyFileSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&policyPath, "policy", "p", "", "policy file path (YAML)")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
