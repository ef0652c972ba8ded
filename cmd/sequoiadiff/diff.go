package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/JonahSussman/sequoia-diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff <src.json> <dst.json>",
	Short: "Print the edit script from src.json to dst.json",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	srcPath, dstPath := args[0], args[1]

	src, err := loadJSONTree(srcPath)
	if err != nil {
		return err
	}
	dst, err := loadJSONTree(dstPath)
	if err != nil {
		return err
	}

	log.Debug().Str("src", srcPath).Str("dst", dstPath).Msg("loaded node trees")

	start := time.Now()
	actions, err := sequoiadiff.TreeDiff(src, dst, nil)
	if err != nil {
		return err
	}

	log.Info().
		Int("actions", len(actions)).
		Dur("elapsed", time.Since(start)).
		Msg("computed edit script")

	for _, a := range actions {
		fmt.Println(a.String())
	}

	return nil
}
