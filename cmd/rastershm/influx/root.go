package influx

import (
	"github.com/spf13/cobra"
	"github.com/torizon/rastershm/cmd/rastershm/rastershm"
)

func init() {
	influxCmd.PersistentFlags().StringVar(&influxDbUrl, "url", "http://localhost:8086", "InfluxDB URL")
	influxCmd.PersistentFlags().StringVar(&influxDbUsername, "username", "", "InfluxDB Username")
	influxCmd.PersistentFlags().StringVar(&influxDbPassword, "password", "", "InfluxDB Password")
	influxCmd.PersistentFlags().StringVar(&influxDbDatabase, "database", "rastershm", "InfluxDB Database")
	rastershm.RootCmd.AddCommand(influxCmd)
}

var influxCmd = &cobra.Command{
	Use:   "influx",
	Short: "Manage the analyzer data in InfluxDB",
}
var influxDbUrl string
var influxDbUsername string
var influxDbPassword string
var influxDbDatabase string
