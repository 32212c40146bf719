package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zzzbluecode/Rocket-Pet-App/internal/config"
)

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMAX SPEED\tACCEL\tSENS\tDRAG\tFOLLOW\tDECEL\tTICK")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%v\n",
			name,
			p.Physics.MaxSpeed,
			p.Physics.Acceleration,
			p.Physics.SteeringSensitivity,
			p.Physics.DragFactor,
			p.Physics.FollowThreshold,
			p.Physics.DecelerationDistance,
			p.Animation.TickInterval,
		)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
