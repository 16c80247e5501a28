package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/LearnLean/pflow/sim/flow"
)

// Define struct for YAML
type ScenarioConfig struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

type Scenario struct {
	Items           int     `yaml:"items"`
	ArrivalInterval float64 `yaml:"arrival_interval"`
	ServiceMean     float64 `yaml:"service_mean"`
	ServiceStdev    float64 `yaml:"service_stdev"`
	MTBF            float64 `yaml:"mtbf"`
	MTTR            float64 `yaml:"mttr"`
	Stations        int     `yaml:"stations"`
	BufferCap       int     `yaml:"buffer_capacity"`
	Poll            float64 `yaml:"poll"`
}

// GetScenario loads a named preset from a YAML scenario file and returns it
// as a line config, or nil when the name is missing from the file.
func GetScenario(path string, name string) *flow.Config {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("unable to read scenario file %s: %v", path, err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Fatalf("unable to parse scenario file %s: %v", path, err)
	}

	sc, ok := cfg.Scenarios[name]
	if !ok {
		return nil
	}
	logrus.Infof("Using preset scenario %v", name)
	return &flow.Config{
		Items:           sc.Items,
		ArrivalInterval: sc.ArrivalInterval,
		ServiceMean:     sc.ServiceMean,
		ServiceStdDev:   sc.ServiceStdev,
		MTBF:            sc.MTBF,
		MTTR:            sc.MTTR,
		Stations:        sc.Stations,
		BufferCap:       sc.BufferCap,
		Poll:            sc.Poll,
	}
}
