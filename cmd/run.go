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
	"io/ioutil"
	"log"
	"os"
	"runtime"

	"github.com/pkg/profile"

	"github.com/notargets/gohydro/InputParameters"
	"github.com/notargets/gohydro/domain"
	"github.com/notargets/gohydro/grid"
	"github.com/spf13/cobra"
)

type ModelRun struct {
	EdgeElems  int
	NumRegions int
	Balance    int
	Cost       int
	NumRanks   int
	Rank       int
	NumThreads int
	ICFile     string
	Quiet      bool
	Progress   bool
	Profile    bool
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Initialize the Sedov blast problem across a cube grid of subdomains",
	Long: `
Builds one rank's subdomain of the Sedov blast problem: structured hex mesh,
material region decomposition, halo buffer plan and boundary conditions,
then verifies the result and reports the region statistics,

gohydro run `,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mr := &ModelRun{}
		mr.EdgeElems, _ = cmd.Flags().GetInt("size")
		mr.NumRegions, _ = cmd.Flags().GetInt("regions")
		mr.Balance, _ = cmd.Flags().GetInt("balance")
		mr.Cost, _ = cmd.Flags().GetInt("cost")
		mr.NumRanks, _ = cmd.Flags().GetInt("nranks")
		mr.Rank, _ = cmd.Flags().GetInt("rank")
		mr.NumThreads, _ = cmd.Flags().GetInt("nthreads")
		mr.Quiet, _ = cmd.Flags().GetBool("quiet")
		mr.Progress, _ = cmd.Flags().GetBool("progress")
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		if mr.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		if len(mr.ICFile) != 0 {
			applyInput(mr)
		}
		RunInit(mr)
	},
}

// applyInput overlays the YAML parameter file onto the flag values. Zero
// valued fields in the file leave the flags alone.
func applyInput(mr *ModelRun) {
	var (
		err  error
		data []byte
	)
	if data, err = ioutil.ReadFile(mr.ICFile); err != nil {
		panic(err)
	}
	ip := &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	if !mr.Quiet {
		ip.Print()
	}
	if ip.EdgeElems != 0 {
		mr.EdgeElems = ip.EdgeElems
	}
	if ip.NumRegions != 0 {
		mr.NumRegions = ip.NumRegions
	}
	if ip.Balance != 0 {
		mr.Balance = ip.Balance
	}
	if ip.Cost != 0 {
		mr.Cost = ip.Cost
	}
	if ip.NumRanks != 0 {
		mr.NumRanks = ip.NumRanks
	}
	if ip.NumThreads != 0 {
		mr.NumThreads = ip.NumThreads
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntP("size", "s", 30, "length of cube mesh along side, in elements")
	runCmd.Flags().IntP("regions", "r", 11, "number of distinct material regions")
	runCmd.Flags().IntP("balance", "b", 1, "load balance between regions of a domain")
	runCmd.Flags().IntP("cost", "c", 1, "extra cost of more expensive regions")
	runCmd.Flags().Int("nranks", 1, "number of cooperating ranks, must be a perfect cube")
	runCmd.Flags().Int("rank", 0, "which rank's subdomain to build")
	runCmd.Flags().Int("nthreads", runtime.GOMAXPROCS(0), "worker pool size for mesh construction")
	runCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- EdgeElems\n\t- NumRegions")
	runCmd.Flags().BoolP("quiet", "q", false, "suppress the region statistics report")
	runCmd.Flags().BoolP("progress", "p", false, "log each initialization phase as it completes")
	runCmd.Flags().Bool("profile", false, "write a CPU profile of the initialization")
}

func RunInit(mr *ModelRun) {
	if mr.Profile {
		defer profile.Start().Stop()
	}
	loc, err := grid.Decompose(mr.NumRanks, mr.Rank)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if mr.Progress {
		log.Printf("rank %d placed at grid (%d,%d,%d) of side %d",
			mr.Rank, loc.Col, loc.Row, loc.Plane, loc.Side)
	}
	d, err := domain.NewDomain(mr.NumRanks, loc, mr.EdgeElems,
		mr.NumRegions, mr.Balance, mr.Cost, mr.NumThreads)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if mr.Progress {
		log.Printf("domain constructed: %d elements, %d nodes, halo capacity %d",
			d.NumElems, d.NumNodes, d.CommBufferCapacity())
	}
	if err = d.Verify(); err != nil {
		fmt.Printf("verification failed: %s\n", err.Error())
		os.Exit(1)
	}
	if mr.Progress {
		log.Printf("verification passed")
	}
	if !mr.Quiet {
		fmt.Printf("Running problem size %d per domain until completion\n", mr.EdgeElems)
		fmt.Printf("Num processors: %d\n", mr.NumRanks)
		fmt.Printf("Num threads: %d\n", mr.NumThreads)
		fmt.Printf("Total number of elements: %d\n\n", mr.NumRanks*d.NumElems)
		fmt.Printf("To run other sizes, use -s <integer>\n")
		fmt.Printf("To run a more or less balanced region set, use -b <integer>\n")
		fmt.Printf("To change the relative costs of regions, use -c <integer>\n")
		fmt.Printf("To change the number of regions, use -r <integer>\n\n")
		d.ReportRegions()
		fmt.Printf("\ninitial energy   = %12.6e\n", d.E[0])
		fmt.Printf("initial timestep = %12.6e\n", d.Deltatime)
	}
}
