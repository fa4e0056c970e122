// mediafmt prints media sizes, durations, bitrates and resolutions the way
// the media-shelf UI shows them.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/damacus/media-shelf/internal/utils"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mediafmt",
		Short:         "Format media sizes, durations and resolutions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBytesCmd(),
		newDurationCmd(),
		newBitrateCmd(),
		newResolutionCmd(),
		newQualityCmd(),
		newSizeCategoryCmd(),
		newPercentCmd(),
		newSanitizeCmd(),
		newTimestampCmd(),
		newVersionCmd(),
	)
	return root
}

func newBytesCmd() *cobra.Command {
	var decimals int
	cmd := &cobra.Command{
		Use:   "bytes <count>",
		Short: "Format a byte count, e.g. 1536 -> 1.5 KB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid byte count %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.FormatBytesPrecision(n, decimals))
			return nil
		},
	}
	cmd.Flags().IntVarP(&decimals, "decimals", "d", utils.DefaultByteDecimals, "maximum fractional digits")
	return cmd
}

func newDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <ms>",
		Short: "Format milliseconds, e.g. 3661000 -> 1h 1m",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.FormatDuration(ms))
			return nil
		},
	}
}

func newBitrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bitrate <bps>",
		Short: "Format bits per second, e.g. 2500000 -> 2.5 Mbps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bps, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid bitrate %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.FormatBitrate(bps))
			return nil
		},
	}
}

func newResolutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolution <text>",
		Short: "Extract WIDTHxHEIGHT from text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ok := utils.ParseResolution(args[0])
			if !ok {
				return fmt.Errorf("no resolution in %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", res.Width, res.Height)
			return nil
		},
	}
}

func newQualityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quality <resolution>",
		Short: "Classify a resolution as 4K, 1080p, 720p, 480p, SD or Unknown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), utils.QualityCategory(args[0]))
			return nil
		},
	}
}

func newSizeCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size-category <bytes>",
		Short: "Bucket a byte count by its size in gigabytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid byte count %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.SizeCategory(n))
			return nil
		},
	}
}

func newPercentCmd() *cobra.Command {
	var decimals int
	cmd := &cobra.Command{
		Use:   "percent <value> <total>",
		Short: "Print value as a percentage of total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			total, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid total %q: %w", args[1], err)
			}
			pct := utils.CalculatePercentagePrecision(value, total, decimals)
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(pct, 'f', -1, 64))
			return nil
		},
	}
	cmd.Flags().IntVarP(&decimals, "decimals", "d", utils.DefaultPercentDecimals, "fractional digits to round to")
	return cmd
}

func newSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <name>...",
		Short: "Make a filename safe to download",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), utils.SanitizeFilename(strings.Join(args, " ")))
			return nil
		},
	}
}

func newTimestampCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timestamp",
		Short: "Print today's UTC date as YYYY-MM-DD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), utils.TimestampString())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print mediafmt version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "mediafmt", resolveVersion())
			return nil
		},
		DisableFlagsInUseLine: true,
	}
}

func resolveVersion() string {
	if version != "" && version != "dev" {
		return strings.TrimPrefix(version, "v")
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return strings.TrimPrefix(info.Main.Version, "v")
		}
	}
	return "dev"
}
