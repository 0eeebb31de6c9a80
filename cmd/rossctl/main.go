// Copyright 2024 The ross-config Authors
// This file is part of the ross-config library.
//
// The ross-config library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ross-config library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ross-config library. If not, see <http://www.gnu.org/licenses/>.

// Command rossctl is a read-only inspector for serialized Config blobs.
// It decodes a blob and either dumps it (Go-syntax via go-spew) or
// reports its content digest; it never authors or edits a configuration
// — that host-side tool is out of scope for the core (spec §1).
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/urfave/cli.v1"

	"github.com/linasdev/ross-config/config"
)

func main() {
	app := cli.NewApp()
	app.Name = "rossctl"
	app.Usage = "inspect serialized ross-config Config blobs"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{dumpCommand, digestCommand}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "rossctl:", err)
		os.Exit(1)
	}
}

var dumpCommand = cli.Command{
	Name:      "dump",
	Usage:     "decode a Config blob and print its Go-syntax structure",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		spew.Dump(cfg)
		return nil
	},
}

var digestCommand = cli.Command{
	Name:      "digest",
	Usage:     "print the Keccak-256 content digest of a Config blob",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		fmt.Printf("%x\n", config.Digest(cfg))
		return nil
	},
}

func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.Args().First()
	if path == "" {
		return config.Config{}, cli.NewExitError("missing <path> argument", 1)
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	return config.Deserialize(bytes)
}
