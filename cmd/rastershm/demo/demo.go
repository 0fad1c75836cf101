package demo

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	core "github.com/torizon/rastershm"
	"github.com/torizon/rastershm/cmd/rastershm/rastershm"
)

func init() {
	demoCmd.Flags().StringVarP(&mapperName, "mapper", "m", "", "Mapper implementation (heap, shared)")
	demoCmd.Flags().Int32VarP(&poolSize, "size", "s", 4096, "Initial pool size in bytes")
	rastershm.RootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Exercise the pool/buffer lifecycle against an anonymous file",
	Run:   demo,
}
var mapperName string
var poolSize int32

func demo(_ *cobra.Command, _ []string) {
	p, err := rastershm.LoadProfile()
	if err != nil {
		logrus.Fatalf("error loading profile (%v)", err)
	}
	if mapperName != "" {
		p.Mapper = mapperName
	}

	shm, err := core.NewShm(p)
	if err != nil {
		logrus.Fatalf("error creating shm (%v)", err)
	}
	logrus.Infof("advertised formats: %v", shm.Bind())

	fd := -1
	if p.Mapper == "shared" {
		fd, err = core.CreateAnonymousFile(int64(poolSize))
		if err != nil {
			logrus.Fatalf("error creating anonymous file (%v)", err)
		}
	}

	poolHandle, err := shm.Apply(core.CreatePool{Fd: fd, Size: poolSize})
	if err != nil {
		logrus.Fatalf("error creating pool (%v)", err)
	}

	side := int32(32)
	stride := side * 4
	bufferHandle, err := shm.Apply(core.CreateBuffer{
		Pool:   poolHandle,
		Offset: 0,
		Width:  side,
		Height: side,
		Stride: stride,
		Format: core.FormatARGB8888,
	})
	if err != nil {
		logrus.Fatalf("error creating buffer (%v)", err)
	}

	buffer, found := shm.BufferFromHandle(bufferHandle)
	if !found {
		logrus.Fatal("lost buffer handle")
	}
	paintChecker(buffer)
	logrus.Infof("painted %dx%d buffer, %d bytes", buffer.Width(), buffer.Height(), len(buffer.Data()))

	if _, err := shm.Apply(core.ResizePool{Pool: poolHandle, Size: poolSize * 2}); err != nil {
		logrus.Fatalf("error resizing pool (%v)", err)
	}
	logrus.Infof("resized pool to %d bytes; buffer still addressable: %d bytes", poolSize*2, len(buffer.Data()))

	secondHandle, err := shm.Apply(core.CreateBuffer{
		Pool:   poolHandle,
		Offset: poolSize,
		Width:  side,
		Height: side,
		Stride: stride,
		Format: core.FormatXRGB8888,
	})
	if err != nil {
		logrus.Fatalf("error creating second buffer (%v)", err)
	}

	for _, h := range []int32{bufferHandle, secondHandle} {
		if _, err := shm.Apply(core.DestroyBuffer{Buffer: h}); err != nil {
			logrus.Fatalf("error destroying buffer [%d] (%v)", h, err)
		}
	}
	if _, err := shm.Apply(core.DestroyPool{Pool: poolHandle}); err != nil {
		logrus.Fatalf("error destroying pool (%v)", err)
	}
	logrus.Infof("lifecycle complete, %d handles live", shm.Handles().Size())
}

func paintChecker(buffer *core.Buffer) {
	data := buffer.Data()
	for y := int32(0); y < buffer.Height(); y++ {
		row := data[y*buffer.Stride():]
		for x := int32(0); x < buffer.Width(); x++ {
			shade := byte(0x00)
			if (x/8+y/8)%2 == 0 {
				shade = 0xff
			}
			pixel := row[x*4 : x*4+4]
			pixel[0] = shade
			pixel[1] = shade
			pixel[2] = shade
			pixel[3] = 0xff
		}
	}
}
