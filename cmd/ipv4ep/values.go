// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/siemens/ipv4ep/endpoint"

	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

// parseAll parses the specified texts into endpoints, failing on the first
// text that isn't a valid endpoint.
func parseAll(texts []string) ([]endpoint.Endpoint, error) {
	eps := make([]endpoint.Endpoint, 0, len(texts))
	for _, text := range texts {
		ep, err := endpoint.Parse(text)
		if err != nil {
			return nil, err
		}
		log.Debugf("parsed %q into %s", text, ep)
		eps = append(eps, ep)
	}
	return eps, nil
}

func portText(ep endpoint.Endpoint) string {
	if ep.IsWildcard() {
		return "any"
	}
	return fmt.Sprint(ep.Port())
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse endpoint...",
		Short: "parse endpoints and show their address and port",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, text := range args {
				ep, err := endpoint.Parse(text)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s address %s port %s\n", ep, ep.Address(), portText(ep))
			}
			return nil
		},
	}
}

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort endpoint...",
		Short: "sort endpoints by their numeric addresses and ports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eps, err := parseAll(args)
			if err != nil {
				return err
			}
			endpoint.Sort(eps)
			printEndpoints(cmd.OutOrStdout(), eps)
			return nil
		},
	}
}

func printEndpoints(w io.Writer, eps []endpoint.Endpoint) {
	for _, ep := range eps {
		fmt.Fprintln(w, ep)
	}
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match endpoint endpoint",
		Short: "tell whether two endpoints match, with port 0 matching any port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eps, err := parseAll(args)
			if err != nil {
				return err
			}
			a, b := eps[0], eps[1]
			w := cmd.OutOrStdout()
			if a.Equals(b) {
				fmt.Fprintf(w, "%s matches %s\n", a, b)
			} else {
				fmt.Fprintf(w, "%s does not match %s\n", a, b)
			}
			switch a.Compare(b) {
			case -1:
				fmt.Fprintf(w, "%s orders before %s\n", a, b)
			case 0:
				fmt.Fprintf(w, "%s orders same as %s\n", a, b)
			default:
				fmt.Fprintf(w, "%s orders after %s\n", a, b)
			}
			return nil
		},
	}
}
