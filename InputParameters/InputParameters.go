package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file. Zero values defer to the
// command line flag defaults.
type InputParameters struct {
	Title      string `yaml:"Title"`
	EdgeElems  int    `yaml:"EdgeElems"`  // elements along one subdomain edge
	NumRegions int    `yaml:"NumRegions"` // material regions per subdomain
	Balance    int    `yaml:"Balance"`    // region weight exponent
	Cost       int    `yaml:"Cost"`       // extra cost multiplier for expensive regions
	NumRanks   int    `yaml:"NumRanks"`   // total ranks, must be a cube
	NumThreads int    `yaml:"NumThreads"` // construction worker pool size
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= EdgeElems\n", ip.EdgeElems)
	fmt.Printf("[%d]\t\t\t= NumRegions\n", ip.NumRegions)
	fmt.Printf("[%d]\t\t\t= Balance\n", ip.Balance)
	fmt.Printf("[%d]\t\t\t= Cost\n", ip.Cost)
	fmt.Printf("[%d]\t\t\t= NumRanks\n", ip.NumRanks)
	fmt.Printf("[%d]\t\t\t= NumThreads\n", ip.NumThreads)
}
