package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/informalsystems/feltcodec"
)

func cairoEncoding() (*feltcodec.Encoding, error) {
	return feltcodec.NewCairoRegistry(feltcodec.WithName("cli")).Build()
}

func encodeByteArray(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one argument")
	}
	raw := []byte(c.Args().First())
	if c.Bool(hexFlag.Name) {
		var err error
		raw, err = hex.DecodeString(strings.TrimPrefix(c.Args().First(), "0x"))
		if err != nil {
			return errors.Wrap(err, "invalid hex input")
		}
	}

	enc, err := cairoEncoding()
	if err != nil {
		return err
	}
	felts, err := feltcodec.Encode[feltcodec.ViaCairo](enc, raw)
	if err != nil {
		return err
	}
	return printFelts(c, felts)
}

func decodeByteArray(c *cli.Context) error {
	felts, err := parseFelts(c.Args())
	if err != nil {
		return err
	}
	enc, err := cairoEncoding()
	if err != nil {
		return err
	}
	raw, err := feltcodec.Decode[feltcodec.ViaCairo, []byte](enc, felts)
	if err != nil {
		feltcodec.Logger().Debug("bytearray decode failed", zap.Int("felts", len(felts)), zap.Error(err))
		return err
	}
	if c.Bool(hexFlag.Name) {
		_, err = fmt.Fprintf(c.App.Writer, "0x%x\n", raw)
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(raw))
	return err
}

func splitU256(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one argument")
	}
	n, ok := new(big.Int).SetString(c.Args().First(), 0)
	if !ok {
		return errors.Errorf("invalid integer %q", c.Args().First())
	}
	v, ok := feltcodec.U256FromBigInt(n)
	if !ok {
		return errors.Errorf("%s does not fit in a u256", n)
	}
	low, high := feltcodec.SplitU256(v)
	return printFelts(c, []*felt.Felt{low, high})
}

func joinU256(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected a low and a high limb")
	}
	limbs, err := parseFelts(c.Args())
	if err != nil {
		return err
	}
	v, rangeErr := feltcodec.JoinU256(limbs[0], limbs[1])
	if rangeErr != nil {
		return rangeErr
	}
	_, err = fmt.Fprintln(c.App.Writer, v.Dec())
	return err
}

func printSelector(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one name")
	}
	_, err := fmt.Fprintln(c.App.Writer, feltcodec.Selector(c.Args().First()))
	return err
}

// parseFelts accepts 0x-prefixed hex or decimal felts.
func parseFelts(args []string) ([]*felt.Felt, error) {
	out := make([]*felt.Felt, 0, len(args))
	for i, s := range args {
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			f, err := feltcodec.FeltFromHex(s)
			if err != nil {
				return nil, errors.Wrapf(err, "argument %d", i+1)
			}
			out = append(out, f)
			continue
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Errorf("argument %d: invalid felt %q", i+1, s)
		}
		f, ok := feltcodec.FeltFromBigInt(n)
		if !ok {
			return nil, errors.Errorf("argument %d: %s is not a felt", i+1, s)
		}
		out = append(out, f)
	}
	return out, nil
}

func printFelts(c *cli.Context, felts []*felt.Felt) error {
	for _, f := range felts {
		if _, err := fmt.Fprintln(c.App.Writer, f); err != nil {
			return err
		}
	}
	return nil
}
