/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydronet/dynwave/geo"
	"github.com/hydronet/dynwave/model_problems/Network1D"
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a scenario's network layout as GeoJSON",
	Long: `
Builds the network from a YAML scenario and writes its nodes and
conduits as a GeoJSON FeatureCollection (WGS84, from UTM coordinates).

dynwave export -s scenario.yaml -o network.geojson`,
	Run: func(cmd *cobra.Command, args []string) {
		scenario, _ := cmd.Flags().GetString("scenario")
		out, _ := cmd.Flags().GetString("out")
		RunExport(scenario, out)
	},
}

func init() {
	rootCmd.AddCommand(ExportCmd)
	ExportCmd.Flags().StringP("scenario", "s", "scenario.yaml", "YAML scenario file")
	ExportCmd.Flags().StringP("out", "o", "network.geojson", "output GeoJSON file")
}

func RunExport(scenario, out string) {
	ip := loadScenario(scenario)
	net, err := Network1D.NewNetwork(ip)
	if err != nil {
		fmt.Printf("unable to build network: %v\n", err)
		os.Exit(1)
	}
	zone := ip.UTMZone
	if zone == 0 {
		zone = 17
	}
	raw, err := geo.ExportNetwork(net.Nodes, net.Links, zone)
	if err != nil {
		fmt.Printf("unable to export network: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, append(raw, '\n'), 0644); err != nil {
		fmt.Printf("unable to write %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d features to %s\n", len(net.Nodes)+len(net.Links), out)
}
