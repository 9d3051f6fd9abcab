package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSearchCommand(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search TEXT PATTERN",
		Short: "Print every offset at which PATTERN occurs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := ro.buildIndex(args[0])
			if err != nil {
				return err
			}
			offsets := idx.Search([]byte(args[1]))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d matches\n", len(offsets))
			if len(offsets) > 0 {
				parts := make([]string, len(offsets))
				for i, offset := range offsets {
					parts[i] = strconv.Itoa(offset)
				}
				fmt.Fprintln(out, strings.Join(parts, " "))
			}
			return nil
		},
	}
}

func newLCPCommand(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lcp TEXT I J",
		Short: "Print the longest common prefix length of the suffixes at offsets I and J",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid offset %q", args[1])
			}
			j, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.Wrapf(err, "invalid offset %q", args[2])
			}

			idx, err := ro.buildIndex(args[0])
			if err != nil {
				return err
			}
			length, err := idx.LongestCommonPrefix(i, j)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %q\n", length, idx.Text()[i:i+length])
			return nil
		},
	}
}

func newLRSCommand(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lrs TEXT",
		Short: "Print the longest substring occurring at least twice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := ro.buildIndex(args[0])
			if err != nil {
				return err
			}
			span := idx.LongestRepeated()
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %q\n", span.Offset, span.Length, idx.Bytes(span))
			return nil
		},
	}
}

func newLCSCommand(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lcs A B",
		Short: "Print the longest substring shared by A and B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := ro.buildIndex(args[0])
			if err != nil {
				return err
			}
			other, err := ro.loadText(args[1])
			if err != nil {
				return err
			}
			common := idx.LongestCommonSubstring(other)
			fmt.Fprintf(cmd.OutOrStdout(), "%d %q\n", len(common), common)
			return nil
		},
	}
}

func newDistinctCommand(ro *rootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "distinct TEXT",
		Short: "Count the distinct non-empty substrings of TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := ro.buildIndex(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, idx.DistinctSubstrings())
			if list {
				for sub := range idx.EachDistinctSubstring() {
					fmt.Fprintf(out, "%q\n", sub)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Also print every distinct substring")
	return cmd
}

func newDumpCommand(ro *rootOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "dump TEXT",
		Short: "Print the suffix array and LCP array as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := ro.buildIndex(args[0])
			if err != nil {
				return err
			}
			text, lcp := idx.Text(), idx.LCP()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "text %016x, %d bytes, %d distinct substrings\n",
				xxhash.Sum64(text), len(text), idx.DistinctSubstrings())

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.AppendHeader(table.Row{"Rank", "Offset", "LCP", "Suffix"})
			rank := 0
			for offset, suffix := range idx.Suffixes() {
				next := "-"
				if rank < len(lcp) {
					next = strconv.Itoa(lcp[rank])
				}
				if width > 0 && len(suffix) > width {
					suffix = suffix[:width]
				}
				t.AppendRow(table.Row{rank, offset, next, fmt.Sprintf("%q", suffix)})
				rank++
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 40, "Truncate suffixes to this many bytes (0 keeps them whole)")
	return cmd
}
