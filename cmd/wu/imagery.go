package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wunderground/wu"
)

func newImageryCmd(a *app, kind wu.ImageryKind) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   string(kind) + "-url <query>",
		Short: fmt.Sprintf("Print the URL of a %s image", kind),
		Long: fmt.Sprintf(`Print the URL of a %s image. Every --set key=value is appended as a
query parameter, except queryType (e.g. animated%s) and imageType
(png, gif, swf), which pick the path and the extension.`, kind, kind),
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := parseSets(sets)
			if err != nil {
				return err
			}
			if kind == wu.ImagerySatellite {
				return a.emit(a.client.SatelliteURL(joinQuery(args), opts))
			}
			return a.emit(a.client.RadarURL(joinQuery(args), opts))
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "image option key=value (repeatable)")
	return cmd
}

func newIconCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "icon-url <name>",
		Short: "Print the URL of a condition icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.emit(a.client.IconURL(args[0]))
		},
	}
}

func newRadarAttrsCmd(a *app) *cobra.Command {
	var (
		sets   []string
		escape bool
	)
	cmd := &cobra.Command{
		Use:   "radar-attrs <query>",
		Short: "Print data-radar-* attributes for a radar widget",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := parseSets(sets)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, a.client.RadarDataAttributes(joinQuery(args), opts, escape))
			return err
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "radar option key=value (repeatable)")
	cmd.Flags().BoolVar(&escape, "escape", true, "HTML-escape attribute values")
	return cmd
}
