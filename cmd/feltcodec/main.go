// Package main provides the feltcodec tool for inspecting felt encodings by hand:
// Cairo ByteArray packing, u256 limbs and entry point selectors.
//
// Usage:
//
//	feltcodec bytearray encode "transfer/channel-0/uatom"
//	feltcodec bytearray decode 0x0 0x7472616e73666572 0x8
//	feltcodec u256 split 340282366920938463463374607431768211461
//	feltcodec selector balance_of
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/informalsystems/feltcodec"
)

var (
	verboseFlag = cli.BoolFlag{
		Name:   "verbose",
		Usage:  "Log encoding assembly and decoding failures to stderr",
		EnvVar: "FELTCODEC_VERBOSE",
	}
	hexFlag = cli.BoolFlag{
		Name:  "hex",
		Usage: "Treat the byte string as hex instead of text",
	}
)

func main() {
	app := newApp(os.Stdout)
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "feltcodec"
	app.Version = "v0.1.0"
	app.Usage = "Encode and decode Starknet felt representations used by the IBC relayer"
	app.Writer = out
	app.Flags = []cli.Flag{verboseFlag}
	app.Before = setupLogger
	app.After = func(_ *cli.Context) error {
		_ = feltcodec.Logger().Sync()
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "bytearray",
			Usage: "Pack and unpack Cairo ByteArrays",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Print the ByteArray felts of a string",
					ArgsUsage: "<text>",
					Flags:     []cli.Flag{hexFlag},
					Action:    encodeByteArray,
				},
				{
					Name:      "decode",
					Usage:     "Print the string held by ByteArray felts",
					ArgsUsage: "<felt>...",
					Flags:     []cli.Flag{hexFlag},
					Action:    decodeByteArray,
				},
			},
		},
		{
			Name:  "u256",
			Usage: "Convert between u256 values and their limbs",
			Subcommands: []cli.Command{
				{
					Name:      "split",
					Usage:     "Print the low and high limbs of a value",
					ArgsUsage: "<value>",
					Action:    splitU256,
				},
				{
					Name:      "join",
					Usage:     "Print the value of a low and a high limb",
					ArgsUsage: "<low> <high>",
					Action:    joinU256,
				},
			},
		},
		{
			Name:      "selector",
			Usage:     "Print the entry point selector of a function or event name",
			ArgsUsage: "<name>",
			Action:    printSelector,
		},
	}
	return app
}

func setupLogger(c *cli.Context) error {
	if !c.GlobalBool(verboseFlag.Name) {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	feltcodec.SetLogger(l)
	return nil
}
