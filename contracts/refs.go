package contracts

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Refs is the deployment record written by terrain, keyed by network and
// then by contract name. JSON is valid YAML, so the file is read with the
// YAML decoder.
type Refs map[string]map[string]Deployment

type Deployment struct {
	CodeID            string            `yaml:"codeId"`
	ContractAddresses map[string]string `yaml:"contractAddresses"`
}

const defaultInstance = "default"

// LoadRefs reads the contract addresses deployed on network from a
// refs.terrain.json file. Contracts without a default instance are skipped.
func LoadRefs(path, network string) (map[string]string, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read refs file")
	}
	return ParseRefs(bz, network)
}

func ParseRefs(bz []byte, network string) (map[string]string, error) {
	var refs Refs
	if err := yaml.Unmarshal(bz, &refs); err != nil {
		return nil, ErrInvalidRefs.Wrap(err.Error())
	}
	deployments, ok := refs[network]
	if !ok {
		return nil, ErrInvalidRefs.Wrapf("no deployments for network %q", network)
	}

	out := make(map[string]string, len(deployments))
	for name, d := range deployments {
		if addr, ok := d.ContractAddresses[defaultInstance]; ok && addr != "" {
			out[name] = addr
		}
	}
	return out, nil
}

// Merge returns base overlaid with override; override wins on conflicts.
func Merge(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
