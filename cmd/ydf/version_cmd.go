package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in ydf's version
	VersionMajor = 0
	// VersionMinor is the minor number in ydf's version
	VersionMinor = 1
	// VersionPatch is the patch number in ydf's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ydf",
		Long:  `All software has versions. This is ydf's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ydf v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
