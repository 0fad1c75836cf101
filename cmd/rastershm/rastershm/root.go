package rastershm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	core "github.com/torizon/rastershm"
	"gopkg.in/yaml.v3"
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&doCpuProfile, "cpu", false, "Enable CPU profiling")
	RootCmd.PersistentFlags().BoolVar(&doMemoryProfile, "memory", false, "Enable memory profiling")
	RootCmd.PersistentFlags().StringVarP(&ConfigPath, "config", "c", "", "Profile config file path")
	RootCmd.PersistentFlags().BoolVarP(&configDump, "dump", "d", false, "Dump the processed profile")
}

var RootCmd = &cobra.Command{
	Use:   strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0])),
	Short: "Shared-memory raster pool scaffolding",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if doCpuProfile {
			cpuProfile = profile.Start(profile.CPUProfile)
		}
		if doMemoryProfile {
			memoryProfile = profile.Start(profile.MemProfile)
		}
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cpuProfile != nil {
			cpuProfile.Stop()
		}
		if memoryProfile != nil {
			memoryProfile.Stop()
		}
	},
}
var verbose bool
var doCpuProfile bool
var cpuProfile interface{ Stop() }
var doMemoryProfile bool
var memoryProfile interface{ Stop() }
var ConfigPath string
var configDump bool

// LoadProfile builds the runtime profile, overlaying a YAML config file when
// one was given on the command line.
func LoadProfile() (*core.Profile, error) {
	p := core.NewBaselineProfile()
	if ConfigPath != "" {
		data, err := os.ReadFile(ConfigPath)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config file [%s]", ConfigPath)
		}
		dataMap := make(map[string]interface{})
		if err = yaml.Unmarshal(data, dataMap); err != nil {
			return nil, errors.Wrapf(err, "unable to unmarshal config data [%s]", ConfigPath)
		}
		if err = p.Load(dataMap); err != nil {
			return nil, errors.Wrapf(err, "unable to load profile [%s]", ConfigPath)
		}
	}
	if configDump {
		logrus.Info(p.Dump())
	}
	return p, nil
}
