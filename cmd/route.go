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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/hydronet/dynwave/InputParameters"
	"github.com/hydronet/dynwave/model_problems/Network1D"
	"github.com/hydronet/dynwave/persistence"
)

// RouteCmd represents the route command
var RouteCmd = &cobra.Command{
	Use:   "route",
	Short: "Route flows through a drainage network scenario",
	Long: `
Loads a YAML scenario (nodes, conduits, inflows) and routes flow
through the network with the dynamic wave solver, optionally recording
per-step results to a SQLite database.

dynwave route -s scenario.yaml -d results.db`,
	Run: func(cmd *cobra.Command, args []string) {
		scenario, _ := cmd.Flags().GetString("scenario")
		dbPath, _ := cmd.Flags().GetString("db")
		showProgress, _ := cmd.Flags().GetBool("progress")
		profileRun, _ := cmd.Flags().GetBool("profile")
		if profileRun {
			defer profile.Start().Stop()
		}
		RunRoute(scenario, dbPath, showProgress)
	},
}

func init() {
	rootCmd.AddCommand(RouteCmd)
	RouteCmd.Flags().StringP("scenario", "s", "scenario.yaml", "YAML scenario file")
	RouteCmd.Flags().StringP("db", "d", "", "SQLite file for per-step results")
	RouteCmd.Flags().BoolP("progress", "p", true, "show a progress bar")
	RouteCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func loadScenario(path string) *InputParameters.InputParameters {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("unable to read scenario file: %v\n", err)
		os.Exit(1)
	}
	ip := &InputParameters.InputParameters{}
	if err := ip.Parse(data); err != nil {
		fmt.Printf("unable to parse scenario file: %v\n", err)
		os.Exit(1)
	}
	return ip
}

func RunRoute(scenario, dbPath string, showProgress bool) {
	ip := loadScenario(scenario)
	ip.Print()

	net, err := Network1D.NewNetwork(ip)
	if err != nil {
		fmt.Printf("unable to build network: %v\n", err)
		os.Exit(1)
	}

	var (
		record Network1D.RecordFunc
		db     *persistence.DB
		runID  string
	)
	if dbPath != "" {
		db, err = persistence.Open(dbPath)
		if err != nil {
			fmt.Printf("unable to open results db: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		runID, err = db.NewRun(ip.Title, ip.RouteStep, ip.FinalTime)
		if err != nil {
			fmt.Printf("unable to register run: %v\n", err)
			os.Exit(1)
		}
		record = func(t float64, n *Network1D.Network) {
			links := make([]persistence.LinkResult, len(n.Links))
			for i, l := range n.Links {
				links[i] = persistence.LinkResult{
					RunID: runID, Time: t, Link: l.Name,
					Flow: l.NewFlow, Depth: l.NewDepth, Volume: l.NewVolume,
					Froude: l.Froude, FlowClass: l.FlowClass.String(),
				}
			}
			nodes := make([]persistence.NodeResult, len(n.Nodes))
			for i, nd := range n.Nodes {
				nodes[i] = persistence.NodeResult{
					RunID: runID, Time: t, Node: nd.Name,
					Depth: nd.NewDepth, Head: nd.Head(),
				}
			}
			if err := db.SaveStep(links, nodes); err != nil {
				fmt.Printf("unable to save step: %v\n", err)
				os.Exit(1)
			}
		}
	}

	start := time.Now()
	net.Run(showProgress, record)
	elapsed := time.Since(start)

	fmt.Printf("\nRouted %s steps over %s conduits in %s\n",
		humanize.Comma(int64(net.Steps)), humanize.Comma(int64(len(net.Links))),
		elapsed.Round(time.Millisecond))
	fmt.Printf("Final outflow = %8.4f cfs\n", net.TotalOutflow())
	if db != nil {
		peaks, err := db.PeakFlows(runID)
		if err == nil {
			for _, l := range net.Links {
				fmt.Printf("Peak |Q| [%s] = %8.4f cfs\n", l.Name, peaks[l.Name])
			}
		}
		fmt.Printf("Results recorded under run %s\n", runID)
	}
}
