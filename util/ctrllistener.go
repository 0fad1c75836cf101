package util

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ctrlListeners = make(map[string]*CtrlListener)
var ctrlMutex sync.Mutex

// CtrlListener accepts newline-delimited keywords on a unix socket and runs
// registered callbacks, giving external tooling a poke-hole into a running
// process.
type CtrlListener struct {
	listener  net.Listener
	callbacks map[string][]func(string) error
	running   bool
}

func GetCtrlListener(root, id string) (cl *CtrlListener, err error) {
	ctrlMutex.Lock()
	defer ctrlMutex.Unlock()

	cl, found := ctrlListeners[root+id]
	if found {
		return cl, nil
	}

	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "error creating ctrl root")
	}
	cl = &CtrlListener{callbacks: make(map[string][]func(string) error)}
	address := filepath.Join(root, fmt.Sprintf("%s.%d.sock", id, os.Getpid()))
	unixAddress, err := net.ResolveUnixAddr("unix", address)
	if err != nil {
		return nil, errors.Wrap(err, "error resolving unix address")
	}
	cl.listener, err = net.ListenUnix("unix", unixAddress)
	if err != nil {
		return nil, errors.Wrap(err, "error listening")
	}
	ctrlListeners[root+id] = cl
	return cl, nil
}

func (self *CtrlListener) AddCallback(keyword string, f func(string) error) {
	self.callbacks[keyword] = append(self.callbacks[keyword], f)
}

func (self *CtrlListener) Start() {
	ctrlMutex.Lock()
	defer ctrlMutex.Unlock()

	if !self.running {
		self.running = true
		go self.run()
	}
}

func (self *CtrlListener) run() {
	logrus.Infof("[%s] started", self.listener.Addr())
	defer logrus.Infof("[%s] exited", self.listener.Addr())

	for {
		conn, err := self.listener.Accept()
		if err == nil {
			go self.handle(conn)
		} else if err == io.EOF {
			return
		} else {
			logrus.Errorf("error accepting ctrl connection (%v)", err)
		}
	}
}

func (self *CtrlListener) handle(conn net.Conn) {
	logrus.Infof("new connection for [%s]", conn.LocalAddr())
	defer logrus.Infof("ended connection for [%s]", conn.LocalAddr())

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			return
		} else if err != nil {
			logrus.Errorf("error reading (%v)", err)
			return
		}

		line = strings.TrimSpace(line)
		self.respond(conn, self.dispatch(line))
	}
}

func (self *CtrlListener) dispatch(line string) error {
	tokens := strings.Split(line, " ")
	if len(tokens) < 1 {
		return errors.New("no tokens")
	}
	fs, found := self.callbacks[tokens[0]]
	if !found {
		return errors.Errorf("no callback for [%s]", line)
	}
	for _, f := range fs {
		if err := f(line); err != nil {
			return err
		}
	}
	return nil
}

func (self *CtrlListener) respond(conn net.Conn, result error) {
	response := "ok\n"
	if result != nil {
		logrus.Errorf("error executing callback (%v)", result)
		response = fmt.Sprintf("error (%s)\n", result)
	}
	if _, err := conn.Write([]byte(response)); err != nil {
		logrus.Errorf("error responding (%v)", err)
	}
}
