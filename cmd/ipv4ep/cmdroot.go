// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

var debug *bool

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:          "ipv4ep",
		Short:        "ipv4ep parses, orders, matches, and verifies IPv4 endpoints",
		Version:      "0.9",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
		},
	}
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	rootCmd.AddCommand(
		newParseCmd(),
		newSortCmd(),
		newMatchCmd(),
		newVerifyCmd(),
	)
	return
}
