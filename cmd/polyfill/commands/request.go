package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/polyfill/internal/core/domain"
)

// addRequestFlags registers the flags shared by resolve and bundle.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("ua", "", "Runtime identity string, e.g. a browser User-Agent")
	cmd.Flags().StringP("features", "f", domain.DefaultFeatureSet,
		"Comma separated capabilities, each optionally followed by |flag, e.g. fetch|gated,Promise")
	cmd.Flags().String("flags", "", "Comma separated flags applied to every capability (always, gated)")
	cmd.Flags().StringP("excludes", "x", "", "Comma separated capabilities to leave out")
	cmd.Flags().String("unknown", "", "Policy for unknown runtimes: ignore or polyfill")
}

func requestFromFlags(cmd *cobra.Command) (domain.Request, error) {
	ua, _ := cmd.Flags().GetString("ua")
	features, _ := cmd.Flags().GetString("features")
	flags, _ := cmd.Flags().GetString("flags")
	excludes, _ := cmd.Flags().GetString("excludes")
	unknown, _ := cmd.Flags().GetString("unknown")

	req := domain.Request{
		Capabilities: domain.ParseFeatureList(features, domain.SplitList(flags)...),
		UserAgent:    ua,
		Excludes:     domain.SplitList(excludes),
	}
	if unknown != "" {
		policy, err := domain.ParseUnknownPolicy(unknown)
		if err != nil {
			return domain.Request{}, err
		}
		req.Unknown = policy
	}
	return req, nil
}
