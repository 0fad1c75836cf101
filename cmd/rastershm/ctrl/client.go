package ctrl

import (
	"bytes"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/torizon/rastershm/cmd/rastershm/rastershm"
)

func init() {
	clientCmd.Flags().StringVarP(&clientCommand, "command", "c", "write", "Command to send")
	ctrlCmd.AddCommand(clientCmd)
	rastershm.RootCmd.AddCommand(ctrlCmd)
}

var ctrlCmd = &cobra.Command{
	Use:   "ctrl",
	Short: "Interact with metrics instance controllers",
}

var clientCmd = &cobra.Command{
	Use:   "client <path>",
	Short: "Connect to a metrics instance controller",
	Args:  cobra.ExactArgs(1),
	Run:   client,
}
var clientCommand string

func client(_ *cobra.Command, args []string) {
	path := args[0]
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		panic(err)
	}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		panic(err)
	}
	_, err = conn.Write([]byte(fmt.Sprintf("%s\n", clientCommand)))
	if err != nil {
		panic(err)
	}
	response := new(bytes.Buffer)
	_, err = io.Copy(response, conn)
	if err != nil && err != io.EOF {
		panic(err)
	}
	logrus.Infof("response:\n%s\n", response.String())
	_ = conn.Close()
}
